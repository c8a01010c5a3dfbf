package lifedata

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Meta holds the ownership and bookkeeping columns shared by every record.
type Meta struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) meta() *Meta { return m }

type Experience struct {
	Meta
	Title       string `json:"title" validate:"required_without=Company,max=200"`
	Company     string `json:"company" validate:"max=200"`
	Period      string `json:"period" validate:"max=100"`
	Description string `json:"description" validate:"max=4000"`
}

type Education struct {
	Meta
	Degree      string `json:"degree" validate:"required_without=Institution,max=200"`
	Institution string `json:"institution" validate:"max=200"`
	Period      string `json:"period" validate:"max=100"`
	Description string `json:"description" validate:"max=4000"`
}

type Certification struct {
	Meta
	Name   string `json:"name" validate:"required,max=200"`
	Issuer string `json:"issuer" validate:"max=200"`
	Date   string `json:"date" validate:"max=100"`
}

// Tag is a skill or hobby.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name" validate:"required,max=100"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is every life-data collection of one user.
type Profile struct {
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Skills         []Tag           `json:"skills"`
	Hobbies        []Tag           `json:"hobbies"`
}

// record is satisfied by pointers to the owned record types.
type record[T any] interface {
	*T
	meta() *Meta
}

var validate = validator.New()
