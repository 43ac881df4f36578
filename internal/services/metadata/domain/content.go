// Package domain synthesizes content records for the metadata service.
//
// Content is not persisted anywhere: each record is derived on demand
// from its id, so repeated requests for the same id within one process
// lifetime produce the same record apart from the creation timestamp
// window anchor.
package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ContentType is the closed enumeration of content kinds.
type ContentType string

const (
	ContentTypeVideo      ContentType = "video"
	ContentTypeArticle    ContentType = "article"
	ContentTypePodcast    ContentType = "podcast"
	ContentTypeLivestream ContentType = "livestream"
	ContentTypeShort      ContentType = "short"
)

var contentTypes = []ContentType{
	ContentTypeVideo,
	ContentTypeArticle,
	ContentTypePodcast,
	ContentTypeLivestream,
	ContentTypeShort,
}

// Publisher credits one content publisher.
type Publisher struct {
	ID     int64
	Name   string
	Avatar string
}

// Content is one synthesized content record.
type Content struct {
	ID          int64
	Name        string
	Description string
	Publishers  []Publisher
	URL         string
	Image       string
	ContentType ContentType
	CreatedAt   time.Time
	Views       int64
	Likes       int64
	Dislikes    int64
}

const (
	placeholderContentImage = "https://placehold.co/1600x900"
	placeholderAvatar       = "https://placehold.co/400x400"
	creationWindowDays      = 30
)

var contentNames = []string{
	"Marginal Reef", "Night Signal", "Paper Atlas", "Quiet Meridian",
	"Ember Arcade", "Halfway Orbit", "Copper Season", "Driftline",
	"Second Harbor", "Glass Parade", "Low Tide Review", "Aurora Index",
}

var descriptionPhrases = []string{
	"a field guide to things nobody asked about",
	"long-form rambling with occasional insight",
	"weekly highlights from the back catalog",
	"behind-the-scenes cuts and commentary",
	"an unhurried tour through the archive",
	"interviews that run well past the hour",
}

var publisherNames = []string{
	"Rowan", "Elena", "Marcus", "Vera", "Theron", "Lyra",
	"Amara", "Kofi", "Zara", "Jabari", "Kenji", "Mei",
	"Priya", "Arjun", "Layla", "Nasir", "Mateo", "Lucia",
}

// Materialize derives one content record from its id. Fields other than
// CreatedAt are a pure function of the id; CreatedAt falls within the
// trailing creation window ending at now.
func Materialize(id int64, now time.Time) Content {
	rng := rand.New(rand.NewPCG(uint64(id), uint64(id)^0x9e3779b97f4a7c15))

	publishers := make([]Publisher, 2+rng.IntN(8))
	for i := range publishers {
		publishers[i] = Publisher{
			ID:     10000 + rng.Int64N(190000),
			Name:   publisherNames[rng.IntN(len(publisherNames))],
			Avatar: placeholderAvatar,
		}
	}

	createdAgo := time.Duration(rng.Int64N(int64(creationWindowDays * 24 * time.Hour)))
	name := contentNames[rng.IntN(len(contentNames))]

	return Content{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("%s: %s", name, descriptionPhrases[rng.IntN(len(descriptionPhrases))]),
		Publishers:  publishers,
		URL:         fmt.Sprintf("https://content.example.com/watch/%d", id),
		Image:       placeholderContentImage,
		ContentType: contentTypes[rng.IntN(len(contentTypes))],
		CreatedAt:   now.UTC().Add(-createdAgo),
		Views:       rng.Int64N(10000),
		Likes:       rng.Int64N(10000),
		Dislikes:    rng.Int64N(10000),
	}
}
