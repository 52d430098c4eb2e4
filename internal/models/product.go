package models

import "time"

// PriceTier is one purchasable weight of a product with its base price.
type PriceTier struct {
	WeightGrams int     `bson:"weightGrams" json:"weightGrams"`
	Label       string  `bson:"label" json:"label"`
	Price       float64 `bson:"price" json:"price"`
}

type Product struct {
	ID         int         `bson:"_id" json:"id"`
	Name       string      `bson:"name" json:"name"`
	Slug       string      `bson:"slug" json:"slug"`
	CategoryID int         `bson:"categoryId" json:"categoryId"`
	ImageURL   *string     `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Tiers      []PriceTier `bson:"tiers" json:"tiers"`
	Shells     []string    `bson:"shells" json:"shells"`
	FlavorIDs  []int       `bson:"flavorIds" json:"flavorIds"`
	Flavors    []Flavor    `bson:"-" json:"flavors"`
	IsActive   bool        `bson:"isActive" json:"isActive"`
	IsDeleted  bool        `bson:"isDeleted" json:"isDeleted,omitempty"`
	CreatedAt  time.Time   `bson:"createdAt" json:"createdAt"`
}
