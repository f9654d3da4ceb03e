package request

type MenuItemRequest struct {
	Category    string  `json:"category" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	PriceCents  int32   `json:"price_cents" binding:"min=0"`
	IsAvailable bool    `json:"is_available"`
	SortOrder   int32   `json:"sort_order"`
}

type BusinessHoursEntry struct {
	Weekday  int16  `json:"weekday" binding:"min=0,max=6"`
	OpensAt  string `json:"opens_at" binding:"required,hhmm"`
	ClosesAt string `json:"closes_at" binding:"required,hhmm"`
	IsClosed bool   `json:"is_closed"`
}

type ReplaceWeekRequest struct {
	Days []BusinessHoursEntry `json:"days" binding:"required,len=7,dive"`
}

type AddHolidayRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Name string `json:"name" binding:"required"`
}

type SetSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}
