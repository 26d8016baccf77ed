package book

type BookReq struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	CoverImage  string  `json:"cover_image"`
	RentPerDay  float64 `json:"rent_per_day" validate:"gte=0"`
}
