package category

type Category struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	RateNormal  float64 `db:"rate_normal" json:"rateNormal"`
	RateSpecial float64 `db:"rate_special" json:"rateSpecial"`
}

type UpdateRatesRequest struct {
	RateNormal  *float64 `json:"rateNormal" binding:"omitempty,gte=0"`
	RateSpecial *float64 `json:"rateSpecial" binding:"omitempty,gte=0"`
}
