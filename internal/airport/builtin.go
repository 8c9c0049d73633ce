package airport

var builtin = []Airport{
	// North America
	{"ATL", "Atlanta", "America/New_York"},
	{"BOS", "Boston", "America/New_York"},
	{"BWI", "Baltimore", "America/New_York"},
	{"CLT", "Charlotte", "America/New_York"},
	{"DCA", "Washington", "America/New_York"},
	{"DTW", "Detroit", "America/Detroit"},
	{"EWR", "Newark", "America/New_York"},
	{"FLL", "Fort Lauderdale", "America/New_York"},
	{"IAD", "Washington", "America/New_York"},
	{"JFK", "New York", "America/New_York"},
	{"LGA", "New York", "America/New_York"},
	{"MCO", "Orlando", "America/New_York"},
	{"MIA", "Miami", "America/New_York"},
	{"PHL", "Philadelphia", "America/New_York"},
	{"PIT", "Pittsburgh", "America/New_York"},
	{"RDU", "Raleigh", "America/New_York"},
	{"TPA", "Tampa", "America/New_York"},
	{"AUS", "Austin", "America/Chicago"},
	{"BNA", "Nashville", "America/Chicago"},
	{"DFW", "Dallas", "America/Chicago"},
	{"HOU", "Houston", "America/Chicago"},
	{"IAH", "Houston", "America/Chicago"},
	{"MCI", "Kansas City", "America/Chicago"},
	{"MDW", "Chicago", "America/Chicago"},
	{"MSP", "Minneapolis", "America/Chicago"},
	{"MSY", "New Orleans", "America/Chicago"},
	{"ORD", "Chicago", "America/Chicago"},
	{"SAT", "San Antonio", "America/Chicago"},
	{"STL", "St. Louis", "America/Chicago"},
	{"ABQ", "Albuquerque", "America/Denver"},
	{"DEN", "Denver", "America/Denver"},
	{"SLC", "Salt Lake City", "America/Denver"},
	{"PHX", "Phoenix", "America/Phoenix"},
	{"LAS", "Las Vegas", "America/Los_Angeles"},
	{"LAX", "Los Angeles", "America/Los_Angeles"},
	{"OAK", "Oakland", "America/Los_Angeles"},
	{"PDX", "Portland", "America/Los_Angeles"},
	{"SAN", "San Diego", "America/Los_Angeles"},
	{"SEA", "Seattle", "America/Los_Angeles"},
	{"SFO", "San Francisco", "America/Los_Angeles"},
	{"SJC", "San Jose", "America/Los_Angeles"},
	{"SMF", "Sacramento", "America/Los_Angeles"},
	{"ANC", "Anchorage", "America/Anchorage"},
	{"HNL", "Honolulu", "Pacific/Honolulu"},
	{"YUL", "Montreal", "America/Toronto"},
	{"YYZ", "Toronto", "America/Toronto"},
	{"YOW", "Ottawa", "America/Toronto"},
	{"YVR", "Vancouver", "America/Vancouver"},
	{"YYC", "Calgary", "America/Edmonton"},
	{"MEX", "Mexico City", "America/Mexico_City"},
	{"CUN", "Cancun", "America/Cancun"},

	// South America
	{"BOG", "Bogota", "America/Bogota"},
	{"EZE", "Buenos Aires", "America/Argentina/Buenos_Aires"},
	{"GRU", "Sao Paulo", "America/Sao_Paulo"},
	{"GIG", "Rio de Janeiro", "America/Sao_Paulo"},
	{"LIM", "Lima", "America/Lima"},
	{"SCL", "Santiago", "America/Santiago"},

	// Europe
	{"AMS", "Amsterdam", "Europe/Amsterdam"},
	{"ARN", "Stockholm", "Europe/Stockholm"},
	{"ATH", "Athens", "Europe/Athens"},
	{"BCN", "Barcelona", "Europe/Madrid"},
	{"BRU", "Brussels", "Europe/Brussels"},
	{"CDG", "Paris", "Europe/Paris"},
	{"ORY", "Paris", "Europe/Paris"},
	{"CPH", "Copenhagen", "Europe/Copenhagen"},
	{"DUB", "Dublin", "Europe/Dublin"},
	{"FCO", "Rome", "Europe/Rome"},
	{"FRA", "Frankfurt", "Europe/Berlin"},
	{"BER", "Berlin", "Europe/Berlin"},
	{"GVA", "Geneva", "Europe/Zurich"},
	{"HEL", "Helsinki", "Europe/Helsinki"},
	{"IST", "Istanbul", "Europe/Istanbul"},
	{"KEF", "Reykjavik", "Atlantic/Reykjavik"},
	{"LGW", "London", "Europe/London"},
	{"LHR", "London", "Europe/London"},
	{"LIS", "Lisbon", "Europe/Lisbon"},
	{"MAD", "Madrid", "Europe/Madrid"},
	{"MAN", "Manchester", "Europe/London"},
	{"MUC", "Munich", "Europe/Berlin"},
	{"MXP", "Milan", "Europe/Rome"},
	{"OSL", "Oslo", "Europe/Oslo"},
	{"PRG", "Prague", "Europe/Prague"},
	{"VIE", "Vienna", "Europe/Vienna"},
	{"WAW", "Warsaw", "Europe/Warsaw"},
	{"ZRH", "Zurich", "Europe/Zurich"},

	// Middle East & Africa
	{"AUH", "Abu Dhabi", "Asia/Dubai"},
	{"CAI", "Cairo", "Africa/Cairo"},
	{"DOH", "Doha", "Asia/Qatar"},
	{"DXB", "Dubai", "Asia/Dubai"},
	{"JNB", "Johannesburg", "Africa/Johannesburg"},
	{"CPT", "Cape Town", "Africa/Johannesburg"},
	{"NBO", "Nairobi", "Africa/Nairobi"},
	{"LOS", "Lagos", "Africa/Lagos"},
	{"TLV", "Tel Aviv", "Asia/Jerusalem"},

	// Asia & Pacific
	{"BKK", "Bangkok", "Asia/Bangkok"},
	{"BOM", "Mumbai", "Asia/Kolkata"},
	{"DEL", "Delhi", "Asia/Kolkata"},
	{"BLR", "Bangalore", "Asia/Kolkata"},
	{"CGK", "Jakarta", "Asia/Jakarta"},
	{"HKG", "Hong Kong", "Asia/Hong_Kong"},
	{"HND", "Tokyo", "Asia/Tokyo"},
	{"NRT", "Tokyo", "Asia/Tokyo"},
	{"KIX", "Osaka", "Asia/Tokyo"},
	{"ICN", "Seoul", "Asia/Seoul"},
	{"KUL", "Kuala Lumpur", "Asia/Kuala_Lumpur"},
	{"MNL", "Manila", "Asia/Manila"},
	{"PEK", "Beijing", "Asia/Shanghai"},
	{"PVG", "Shanghai", "Asia/Shanghai"},
	{"SGN", "Ho Chi Minh City", "Asia/Ho_Chi_Minh"},
	{"SIN", "Singapore", "Asia/Singapore"},
	{"TPE", "Taipei", "Asia/Taipei"},
	{"AKL", "Auckland", "Pacific/Auckland"},
	{"BNE", "Brisbane", "Australia/Brisbane"},
	{"MEL", "Melbourne", "Australia/Melbourne"},
	{"PER", "Perth", "Australia/Perth"},
	{"SYD", "Sydney", "Australia/Sydney"},
}
