package dto

import (
	"time"
)

type CreateSessionResponse struct {
	Id    string `json:"id"`
	Token string `json:"token"`
}

type RecommendRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ProductDTO struct {
	Id          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Price       float64           `json:"price"`
	Description string            `json:"description,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Features    []string          `json:"features,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
}

type RecommendationDTO struct {
	Product         ProductDTO `json:"product"`
	SimilarityScore float64    `json:"similarity_score"`
	FilterScore     float64    `json:"filter_score"`
	CombinedScore   float64    `json:"combined_score"`
}

type ConstraintsDTO struct {
	Category      string   `json:"category,omitempty"`
	PriceMin      *float64 `json:"price_min,omitempty"`
	PriceMax      *float64 `json:"price_max,omitempty"`
	Brands        []string `json:"brands,omitempty"`
	RequiredTags  []string `json:"required_tags,omitempty"`
	PreferredTags []string `json:"preferred_tags,omitempty"`
}

type RecommendResponse struct {
	SessionId       string              `json:"session_id"`
	Reply           string              `json:"reply"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	Constraints     ConstraintsDTO      `json:"constraints"`
	Degraded        bool                `json:"degraded,omitempty"`
	Relaxed         []string            `json:"relaxed,omitempty"`
	Rejected        []string            `json:"rejected,omitempty"`
	Empty           bool                `json:"empty,omitempty"`
}

type TurnDTO struct {
	Utterance      string    `json:"utterance"`
	RecommendedIds []string  `json:"recommended_ids"`
	At             time.Time `json:"at"`
}

type GetSessionResponse struct {
	Id          string         `json:"id"`
	Phase       string         `json:"phase"`
	Constraints ConstraintsDTO `json:"constraints"`
	Turns       []TurnDTO      `json:"turns"`
	CreatedAt   time.Time      `json:"created_at"`
}
