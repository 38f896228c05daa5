package lf

import "go.uber.org/zap"

const (
	FieldModule      = "module"
	FieldUserID      = "user_id"
	FieldPage        = "page"
	FieldPageSize    = "page_size"
	FieldFilename    = "filename"
	FieldBucket      = "bucket"
	FieldLetterRange = "letter_range"
	FieldRequestID   = "request_id"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func UserID(id string) zap.Field {
	return zap.String(FieldUserID, id)
}

func Page(page int) zap.Field {
	return zap.Int(FieldPage, page)
}

func PageSize(size int) zap.Field {
	return zap.Int(FieldPageSize, size)
}

func Filename(name string) zap.Field {
	return zap.String(FieldFilename, name)
}

func Bucket(bucket string) zap.Field {
	return zap.String(FieldBucket, bucket)
}

func LetterRange(letterRange string) zap.Field {
	return zap.String(FieldLetterRange, letterRange)
}

func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}
