package signs

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Letter ranges the mobile client can ask about. The model is told to pick
// only within the requested half of the alphabet.
const (
	RangeAN = "A-N"
	RangeOZ = "O-Z"
)

var defaultPrompts = Prompts{
	Ranges: map[string]string{
		RangeAN: promptForLetters("A to N"),
		RangeOZ: promptForLetters("O to Z"),
	},
}

func promptForLetters(letters string) string {
	return "Between the letters " + letters + ", what ASL handsign is in this image? " +
		"Isolate only the hand and thumb, ignore the orientation of the sign, and analyze. " +
		"Respond as:\n" +
		"Your Sign Looks Like: [Letter]\n" +
		"Score: [1-3] (3 = great match, 1 = needs more practice)\n" +
		"Feedback: [Short, friendly note on what's right or off, such as finger position, thumb placement, or hand shape.]\n" +
		"If you are not confident, also give the second most likely letter."
}

// Prompts maps a letter range to the full instruction sent to the model.
// Loaded from YAML so prompt tuning does not need a redeploy.
type Prompts struct {
	Ranges map[string]string `yaml:"ranges"`
}

// LoadPrompts reads prompt overrides from path. An empty path yields the
// built-in prompts; a file only needs to list the ranges it overrides.
func LoadPrompts(path string) (*Prompts, error) {
	prompts := Prompts{Ranges: map[string]string{}}
	for letterRange, prompt := range defaultPrompts.Ranges {
		prompts.Ranges[letterRange] = prompt
	}
	if path == "" {
		return &prompts, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read prompts file")
	}

	var loaded Prompts
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return nil, errors.Wrap(err, "Failed to parse prompts file")
	}
	for letterRange, prompt := range loaded.Ranges {
		prompts.Ranges[letterRange] = prompt
	}
	return &prompts, nil
}

// ValidRange reports whether the client asked for a known letter range.
func (p *Prompts) ValidRange(letterRange string) bool {
	_, ok := p.Ranges[letterRange]
	return ok
}
