package features

// Category is one scam-indicator dimension: a fixed, ordered list of
// lower-cased keyword phrases matched as substrings of the message.
type Category struct {
	// Name is the human-readable label shown to API consumers.
	Name string
	// Column is the column name used by the factor-annotated dataset format.
	Column string
	// Keywords are the phrases scored for this category. Never empty.
	Keywords []string
}

// NumCategories is the fixed length of every feature vector. The order of
// Categories is load-bearing: the model, dataset columns and UI labels all
// index positionally.
const NumCategories = 10

// Categories is the single canonical category table. Both the offline
// labeling path and the online predictor read from here, so the two can
// never drift apart.
var Categories = [NumCategories]Category{
	{
		Name:   "Urgency",
		Column: "urgency",
		Keywords: []string{
			"urgent", "immediately", "asap", "now", "instantly", "right away", "critical",
			"emergency", "act fast", "without delay", "rush", "time sensitive", "immediate attention",
			"important", "priority", "respond quickly", "final notice", "quickly", "within hours", "last chance",
		},
	},
	{
		Name:   "Money Request",
		Column: "money_request",
		Keywords: []string{
			"send money", "payment", "bank account", "transfer", "fund", "financial assistance",
			"deposit", "remit", "wire", "moneygram", "western union", "btc", "crypto", "currency",
			"dollars", "cash", "fee", "transaction", "cheque", "inheritance", "unclaimed funds", "reward",
			"$", "million", "billion", "usd", "50m", "50 million", "50$", "50000", "lot of money", "wealth",
		},
	},
	{
		Name:   "Official Appearance",
		Column: "official_appearance",
		Keywords: []string{
			"official", "government", "irs", "fbi", "customs", "account update", "verification",
			"authority", "compliance", "legal", "investigation", "officer", "department", "administrator",
			"state", "national", "hq", "regulation", "policy", "internal audit",
		},
	},
	{
		Name:   "Reward Offer",
		Column: "reward_offer",
		Keywords: []string{
			"win", "congratulations", "lucky", "jackpot", "lottery", "cash prize", "gift card",
			"you've won", "sweepstakes", "bingo", "claim prize", "million", "billion", "bonanza",
			"reward", "exclusive prize", "you qualify", "redeem", "receive funds", "special winner",
		},
	},
	{
		Name:   "Celebrity Reference",
		Column: "celebrity_reference",
		Keywords: []string{
			"elon musk", "taylor swift", "jeff bezos", "bill gates", "oprah", "lebron", "cristiano",
			"selena", "beyonce", "trump", "biden", "modi", "virat", "shahrukh", "kardashian",
			"celebrity", "hollywood", "influencer", "verified", "blue tick",
		},
	},
	{
		Name:   "Grammar Issues",
		Column: "grammar_issues",
		Keywords: []string{
			"recieve", "seperated", "definately", "adress", "freind", "untill", "wich", "immediatly",
			"inconvienent", "completly", "alot", "happend", "beleive", "enviroment", "goverment",
			"neccessary", "occurence", "seperate", "succesful", "truely",
		},
	},
	{
		Name:   "Unusual Contact Method",
		Column: "unusual_contact_method",
		Keywords: []string{
			"telegram", "whatsapp", "sms", "text", "chat", "dm", "message me", "contact via app",
			"reach me", "wechat", "imo", "viber", "signal", "messenger", "snapchat", "facebook",
			"call this number", "ping me", "alternative number", "line",
		},
	},
	{
		Name:   "Pressure To Act",
		Column: "pressure_to_act",
		Keywords: []string{
			"act now", "limited time", "only today", "last chance", "hurry", "urgent deadline",
			"before it's too late", "don't miss out", "one-time offer", "expires soon",
			"final offer", "time running out", "claim fast", "do not delay", "fast response",
			"limited stock", "urgent response needed", "need quick answer", "instantly confirm", "must act quickly",
		},
	},
	{
		Name:   "Suspicious Link",
		Column: "suspicious_link",
		Keywords: []string{
			"http", "https", "bit.ly", "tinyurl", "shorturl", "redirect", ".xyz", ".top", ".win",
			"click here", "open link", "see details", "login page", "promo code", "verify link",
			"security page", "unusual login", "confirm access", "track order", "claim voucher",
		},
	},
	{
		Name:   "Upfront Payment",
		Column: "upfront_payment",
		Keywords: []string{
			"pay upfront", "advance payment", "initial deposit", "send fee", "registration fee",
			"processing fee", "processing charge", "application cost", "service fee", "transfer cost",
			"one-time charge", "security fee", "membership fee", "setup cost", "handling fee",
			"deposit first", "pay before", "cash advance", "shipping fee", "booking charge", "consultation fee",
		},
	},
}

// Names returns the category display names in vector order.
func Names() [NumCategories]string {
	var out [NumCategories]string
	for i, c := range Categories {
		out[i] = c.Name
	}
	return out
}

// Columns returns the dataset column names in vector order.
func Columns() [NumCategories]string {
	var out [NumCategories]string
	for i, c := range Categories {
		out[i] = c.Column
	}
	return out
}

// An empty keyword list would mean division by zero when scoring. That is a
// configuration error, not a runtime input error, so refuse to start.
func init() {
	for _, c := range Categories {
		if len(c.Keywords) == 0 {
			panic("features: category " + c.Name + " has no keywords")
		}
	}
}
