package pot

// Bucket is a snapshot of a main pot or side pot
type Bucket struct {
	Amount       int   `json:"amount"`
	Contributors []int `json:"contributors"`
}

// Buckets is an ordered list of buckets, main pot first
type Buckets []Bucket

// Total returns the combined total of all buckets
func (b Buckets) Total() int {
	total := 0
	for _, bucket := range b {
		total += bucket.Amount
	}

	return total
}
