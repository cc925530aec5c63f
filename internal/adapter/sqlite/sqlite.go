// Package sqlite implements the domain repositories on an embedded SQLite
// file through gorm.
package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// DB wraps a *gorm.DB and implements domain repository interfaces.
type DB struct {
	gorm *gorm.DB
}

var (
	_ domain.WeightRepository     = (*DB)(nil)
	_ domain.WaterRepository      = (*DB)(nil)
	_ domain.UserRepository       = (*DB)(nil)
	_ domain.ProfileRepository    = (*DB)(nil)
	_ domain.FoodLogRepository    = (*DB)(nil)
	_ domain.CustomFoodRepository = (*DB)(nil)
	_ domain.RecipeRepository     = (*DB)(nil)
	_ domain.SessionRepository    = (*SessionRepo)(nil)
)

// Open opens (or creates) the database file at path and migrates it.
func Open(path string) (*DB, error) {
	g, err := gorm.Open(sqlitedriver.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection serialises access.
	sqlDB.SetMaxOpenConns(1)

	if err := g.AutoMigrate(
		&weightEvent{}, &waterEvent{}, &user{}, &session{},
		&profileRow{}, &foodEntry{}, &customFood{}, &recipe{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{gorm: g}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type weightEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Value     float64   `gorm:"not null"`
	Unit      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (weightEvent) TableName() string { return "weight_events" }

type waterEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Day       string    `gorm:"not null;index"`
	DeltaMl   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (waterEvent) TableName() string { return "water_events" }

type user struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (user) TableName() string { return "users" }

type session struct {
	Token     string    `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	UserAgent string    `gorm:"not null;default:''"`
	IP        string    `gorm:"column:ip;not null;default:''"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (session) TableName() string { return "sessions" }

type profileRow struct {
	ID                      int     `gorm:"primaryKey;autoIncrement:false"`
	Age                     int     `gorm:"not null"`
	Gender                  string  `gorm:"not null"`
	HeightCm                float64 `gorm:"not null"`
	WeightKg                float64 `gorm:"not null"`
	ActivityLevel           string  `gorm:"not null"`
	Goal                    string  `gorm:"not null"`
	CalorieTarget           int     `gorm:"not null"`
	CalorieTargetOverridden bool    `gorm:"not null;default:false"`
	MacroRatios             *string
	WeightGoal              *string
	UpdatedAt               time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (profileRow) TableName() string { return "profile" }

type foodEntry struct {
	ID          string    `gorm:"primaryKey"`
	Day         string    `gorm:"not null;index"`
	Meal        string    `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Brand       string    `gorm:"not null;default:''"`
	ServingQty  float64   `gorm:"not null"`
	ServingUnit string    `gorm:"not null"`
	Calories    float64   `gorm:"not null"`
	Protein     float64   `gorm:"not null"`
	Carbs       float64   `gorm:"not null"`
	Fat         float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

func (foodEntry) TableName() string { return "food_entries" }

type customFood struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"not null;index"`
	Brand       string    `gorm:"not null;default:''"`
	ServingSize float64   `gorm:"not null"`
	ServingUnit string    `gorm:"not null"`
	Calories    float64   `gorm:"not null"`
	Protein     float64   `gorm:"not null"`
	Carbs       float64   `gorm:"not null"`
	Fat         float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

func (customFood) TableName() string { return "custom_foods" }

type recipe struct {
	ID          string         `gorm:"primaryKey"`
	Name        string         `gorm:"not null;index"`
	Servings    int            `gorm:"not null"`
	Ingredients ingredientList `gorm:"type:text;not null"`
	Calories    float64        `gorm:"not null"`
	Protein     float64        `gorm:"not null"`
	Carbs       float64        `gorm:"not null"`
	Fat         float64        `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime:false"`
}

func (recipe) TableName() string { return "recipes" }

// ingredientList stores recipe ingredients as a JSON text column.
type ingredientList []domain.RecipeIngredient

// Value implements driver.Valuer.
func (l ingredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ingredientList) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ingredients: unsupported type %T", value)
	}
	return json.Unmarshal(b, l)
}
