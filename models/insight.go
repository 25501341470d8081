package models

import "time"

// Insight is a long-term memory record saved by the assistant. Insights are
// created through the save_insight tool and queried by content or tag match;
// they are never mutated or deleted by the assistant layer.
type Insight struct {
	ID         string    `bson:"id" json:"id"`
	Category   string    `bson:"category" json:"category"`
	Content    string    `bson:"content" json:"content"`
	Tags       []string  `bson:"tags" json:"tags"`
	Importance int       `bson:"importance" json:"importance"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
