package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Album is a single entry of the personal collection. The JSON id key stays
// "_id" because the frontend addresses records by it.
type Album struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	ReleaseDate time.Time          `bson:"releaseDate" json:"releaseDate"`
	Artist      string             `bson:"artist" json:"artist"`
	Ranking     int                `bson:"ranking" json:"ranking"`
}

func (a *Album) String() string {
	str := `"` + a.Title + `"`
	if a.Artist != "" {
		str += ` by ` + a.Artist
	}
	return str
}
