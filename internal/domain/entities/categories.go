package entities

// CommonsCategories maps Commons register category numbers to relationship
// types.
var CommonsCategories = map[string]RelationshipType{
	"1":  RelationEmployedBy,    // Employment and Earnings
	"2":  RelationDonationFrom,  // Donations
	"3":  RelationGiftFrom,      // Gifts, Benefits and Hospitality
	"4":  RelationVisited,       // Overseas Visits
	"5":  RelationGiftFrom,      // Gifts, Benefits and Hospitality Non UK
	"6":  RelationOwnerOf,       // Land and Property Portfolio
	"7":  RelationShareholderOf, // Shareholdings
	"8":  RelationMiscellaneous, // Miscellaneous
	"9":  RelationRelatedTo,     // Family Employee
	"10": RelationRelatedTo,     // Family Lobbyist
}

// LordsCategories maps Lords register category labels to relationship types.
var LordsCategories = map[string]RelationshipType{
	"Category 1":  RelationDirectorOf,
	"Category 2":  RelationEmployedBy,
	"Category 3":  RelationSignificantControl,
	"Category 4":  RelationShareholderOf,
	"Category 5":  RelationOwnerOf,
	"Category 6":  RelationSponsoredBy,
	"Category 7":  RelationVisited,
	"Category 8":  RelationGiftFrom,
	"Category 9":  RelationMiscellaneous,
	"Category 10": RelationMiscellaneous,
}
