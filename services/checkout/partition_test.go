package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(productUID string, quantity int, vendorUID string, price int64) CartLine {
	return CartLine{ProductUID: productUID, Quantity: quantity, VendorUID: vendorUID, UnitPrice: decimal.NewFromInt(price)}
}

func TestPartition(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		buckets := Partition(nil)

		assert.Empty(t, buckets)
		assert.True(t, GrandTotal(buckets).IsZero())
	})

	t.Run("Vendors in first-seen order with stable lines", func(t *testing.T) {
		lines := []CartLine{
			line("p1", 2, "A", 10),
			line("p2", 1, "B", 50),
			line("p3", 3, "A", 5),
			line("p4", 1, "C", 7),
			line("p5", 4, "B", 1),
		}

		buckets := Partition(lines)

		assert.Len(t, buckets, 3)
		assert.Equal(t, "A", buckets[0].VendorUID)
		assert.Equal(t, []CartLine{lines[0], lines[2]}, buckets[0].Lines)
		assert.Equal(t, "35", buckets[0].Total.String())
		assert.Equal(t, "B", buckets[1].VendorUID)
		assert.Equal(t, []CartLine{lines[1], lines[4]}, buckets[1].Lines)
		assert.Equal(t, "54", buckets[1].Total.String())
		assert.Equal(t, "C", buckets[2].VendorUID)
		assert.Equal(t, "7", buckets[2].Total.String())
		assert.Equal(t, "96", GrandTotal(buckets).String())
	})

	t.Run("Every line ends up in exactly one bucket", func(t *testing.T) {
		lines := []CartLine{
			line("p1", 1, "B", 3),
			line("p2", 2, "A", 4),
			line("p3", 3, "B", 5),
		}

		buckets := Partition(lines)

		count := 0
		for _, b := range buckets {
			for _, l := range b.Lines {
				assert.Equal(t, b.VendorUID, l.VendorUID)
				count++
			}
		}
		assert.Equal(t, len(lines), count)
	})

	t.Run("Fractional prices are exact", func(t *testing.T) {
		lines := []CartLine{
			{ProductUID: "p1", Quantity: 3, VendorUID: "A", UnitPrice: decimal.RequireFromString("0.10")},
			{ProductUID: "p2", Quantity: 1, VendorUID: "A", UnitPrice: decimal.RequireFromString("0.20")},
		}

		buckets := Partition(lines)

		assert.True(t, decimal.RequireFromString("0.5").Equal(buckets[0].Total))
	})
}
