package models

// Flavor is a filling option linked to one or more products. Surcharge is
// added on top of the product tier price when the flavor is chosen.
type Flavor struct {
	ID        int     `bson:"_id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Surcharge float64 `bson:"surcharge" json:"surcharge"`
	IsActive  bool    `bson:"isActive" json:"isActive"`
}
