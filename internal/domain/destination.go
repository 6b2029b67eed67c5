package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DestinationCategory string

const (
	CategoryBeach     DestinationCategory = "beach"
	CategoryMountain  DestinationCategory = "mountain"
	CategoryCity      DestinationCategory = "city"
	CategoryAdventure DestinationCategory = "adventure"
	CategoryCultural  DestinationCategory = "cultural"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyExtreme     Difficulty = "extreme"
)

type Destination struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	Name        string              `db:"name" json:"name"`
	Category    DestinationCategory `db:"category" json:"category"`
	Location    string              `db:"location" json:"location"`
	Description *string             `db:"description" json:"description,omitempty"`
	Highlights  pq.StringArray      `db:"highlights" json:"highlights"`
	BestTime    *string             `db:"best_time" json:"best_time,omitempty"`
	Difficulty  Difficulty          `db:"difficulty" json:"difficulty"`
	Duration    *string             `db:"duration" json:"duration,omitempty"`
	ImageURL    *string             `db:"image_url" json:"image_url,omitempty"`
	Price       float64             `db:"price" json:"price"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

// DestinationFields carries the mutable subset of a destination. Nil pointers
// mean "leave unchanged" on update.
type DestinationFields struct {
	Name        *string              `json:"name,omitempty"`
	Category    *DestinationCategory `json:"category,omitempty"`
	Location    *string              `json:"location,omitempty"`
	Description *string              `json:"description,omitempty"`
	Highlights  []string             `json:"highlights,omitempty"`
	BestTime    *string              `json:"best_time,omitempty"`
	Difficulty  *Difficulty          `json:"difficulty,omitempty"`
	Duration    *string              `json:"duration,omitempty"`
	ImageURL    *string              `json:"image_url,omitempty"`
	Price       *float64             `json:"price,omitempty"`
}

func (c DestinationCategory) Valid() bool {
	switch c {
	case CategoryBeach, CategoryMountain, CategoryCity, CategoryAdventure, CategoryCultural:
		return true
	}
	return false
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging, DifficultyExtreme:
		return true
	}
	return false
}
