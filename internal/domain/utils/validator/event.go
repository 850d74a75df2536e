package validator

import "unicode/utf8"

func EventTitle(title string) bool {
	return utf8.RuneCountInString(title) >= 3 && utf8.RuneCountInString(title) <= 100
}

func EventDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 500
}

// EventCapacity accepts nil (unlimited) or any non-negative limit.
func EventCapacity(capacity *int) bool {
	return capacity == nil || *capacity >= 0
}

func LotterySampleSize(n int) bool {
	return n >= 0
}
