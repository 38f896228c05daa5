package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/signlingo/backend/internal/models"
)

type DataBase struct {
	*gorm.DB
}

type DuplicateKey struct {
	nested error
}

func (e *DuplicateKey) Error() string {
	return e.nested.Error()
}

func (e *DuplicateKey) Unwrap() error {
	return e.nested
}

func IsDuplicateKey(err error) bool {
	duplicateKey := &DuplicateKey{}
	return errors.As(err, &duplicateKey)
}

// gorm does not surface unique violations as typed errors:
// https://github.com/go-gorm/gorm/issues/4037
func isUniqueViolation(err error) bool {
	perr, ok := err.(*pgconn.PgError)
	if ok {
		return perr.Code == "23505"
	}
	return false
}

func OpenDataBase(logger *zap.Logger, dsn string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.LessonProgress{})
	if err != nil {
		return nil, err
	}

	return &DataBase{db}, nil
}

// AddUser registers a score record on first sight of a verified subject.
// Existing records are returned untouched, so a re-login never resets the
// score or the registration timestamp.
func (db *DataBase) AddUser(user *models.User) (*models.User, error) {
	var res models.User
	err := db.Where(models.User{ID: user.ID}).Attrs(models.User{
		Username: user.Username,
		Email:    user.Email,
		Avatar:   user.Avatar,
	}).FirstOrCreate(&res).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return &res, nil
}

// FindUserByID returns (nil, nil) for an unknown id. Callers decide whether
// a missing record is an error.
func (db *DataBase) FindUserByID(id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListLeaderboardPage fetches one page of score records in the leaderboard
// total order: score descending, then registration time, then id. This
// ordering is part of the rank contract and must not change.
func (db *DataBase) ListLeaderboardPage(offset, limit int) ([]models.User, error) {
	users := make([]models.User, 0, limit)
	err := db.
		Order("score DESC, created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountDistinctScoresAbove counts distinct score values strictly greater
// than the given score across the whole table. The aggregate runs
// server-side, so the result is exact at any table size.
func (db *DataBase) CountDistinctScoresAbove(score int64) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("score > ?", score).
		Distinct("score").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AddScore atomically increments a user's score and records the lesson that
// earned it. Negative deltas are rejected here rather than at the database
// so the caller gets a usable error.
func (db *DataBase) AddScore(userID string, progress *models.LessonProgress) (int64, error) {
	if progress.Score < 0 {
		return 0, fmt.Errorf("negative score delta %d", progress.Score)
	}

	var total int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("score", gorm.Expr("score + ?", progress.Score))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("unknown user %s", userID)
		}

		if err := tx.Create(progress).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		total = user.Score
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (db *DataBase) SetUserAvatar(userID string, avatar *string) error {
	res := db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown user %s", userID)
	}
	return nil
}
