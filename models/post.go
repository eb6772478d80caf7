package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostTypeSOP  = "SOP"
	PostTypeVisa = "VISA"
)

// Post is a community guide written by a user, either a statement-of-purpose
// sample or a visa-process writeup for a country.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Type      string             `bson:"type" json:"type"`
	Country   string             `bson:"country" json:"country"`
	Tags      []string           `bson:"tags" json:"tags"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Post) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Type != PostTypeSOP && p.Type != PostTypeVisa {
		return fmt.Errorf("type must be SOP or VISA; got %q", p.Type)
	}
	return nil
}

func (p *Post) ApplyDefaults() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
