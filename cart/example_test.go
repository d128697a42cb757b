package cart_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/juniortchinde/pricecart/cart"
)

func Example() {
	c := cart.New()

	_ = c.AddItem("Livre", decimal.RequireFromString("100.00"), 3)

	_ = c.RegisterBuyNGetOneFree("B2G1", "Livre", 2)
	_ = c.RegisterPercentagePromo("TEN", "Livre", decimal.RequireFromString("10"), decimal.Zero)
	c.ActivatePromo("B2G1")
	c.ActivatePromo("TEN")

	fmt.Println(c.TotalAmount())
	// Output: 180
}
