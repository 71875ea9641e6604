package utils

// Constants
const (
	DATE_LAYOUT     = "02.01.2006 15:04"
	ISO_DATE_LAYOUT = "2006-01-02 15:04"
	DAY_LAYOUT      = "2006-01-02"
)
