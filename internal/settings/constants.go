package settings

// Config keys stored in the settings table.
const (
	// AdminPassKey holds the bcrypt hash of the admin password.
	AdminPassKey = "adminPass"
	// PrizeTitleKey holds the raffle prize title.
	PrizeTitleKey = "prizeTitle"
	// PrizeDescriptionKey holds the raffle prize description.
	PrizeDescriptionKey = "prizeDescription"
	// PrizeDateKey holds the draw date.
	PrizeDateKey = "prizeDate"
	// PrizeTimeKey holds the draw time.
	PrizeTimeKey = "prizeTime"
	// PrizePriceKey holds the price per raffle number.
	PrizePriceKey = "prizePrice"
	// PrizeDigitsKey holds the digit count of raffle numbers.
	PrizeDigitsKey = "prizeDigits"
)

// Defaults seeded at first startup.
const (
	// DefaultAdminPassword is the initial admin password, stored hashed.
	DefaultAdminPassword = "admin123"
	// DefaultPrizeTitle is the initial prize title.
	DefaultPrizeTitle = "Gran Premio"
	// DefaultPrizeDescription is the initial prize description.
	DefaultPrizeDescription = "Participa en nuestra rifa solidaria."
	// DefaultPrizePrice is the initial price per number.
	DefaultPrizePrice = "10"
	// DefaultPrizeDigits is the initial digit count.
	DefaultPrizeDigits = "4"
)

// MinPasswordLength is the minimum accepted admin password length.
const MinPasswordLength = 4
