package ports

// AddressParser is the postal-address extraction capability.
type AddressParser interface {
	// ParseAddresses returns every address span found in the text for the
	// given country code.
	ParseAddresses(text, country string) []string
}
