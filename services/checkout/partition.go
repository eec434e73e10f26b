package checkout

import (
	"github.com/shopspring/decimal"
)

// Partition groups lines per vendor. Vendors appear in first-seen order and lines keep their cart order.
func Partition(lines []CartLine) []VendorBucket {
	buckets := []VendorBucket{}
	index := map[string]int{}
	for _, line := range lines {
		i, found := index[line.VendorUID]
		if !found {
			i = len(buckets)
			index[line.VendorUID] = i
			buckets = append(buckets, VendorBucket{VendorUID: line.VendorUID, Total: decimal.Zero})
		}
		buckets[i].Lines = append(buckets[i].Lines, line)
		buckets[i].Total = buckets[i].Total.Add(line.Amount())
	}
	return buckets
}

// GrandTotal sums the totals of all buckets.
func GrandTotal(buckets []VendorBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Total)
	}
	return total
}
