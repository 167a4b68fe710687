package ingredient

// Conversions maps a (from, to) unit pair to the ratio "1 from = ratio to".
type Conversions map[[2]int]float64

// Convert mirrors IngredientService.Convert over an in-memory table.
func (c Conversions) Convert(amount float64, from, to int) (float64, bool) {
	if from == to {
		return amount, true
	}
	if ratio, ok := c[[2]int{from, to}]; ok {
		return amount * ratio, true
	}
	if ratio, ok := c[[2]int{to, from}]; ok && ratio != 0 {
		return amount / ratio, true
	}
	return 0, false
}
