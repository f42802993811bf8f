package understanding

// Fixed vocabularies for attribute and function-flag detection. These are
// membership tests, not NLP: a phrase either appears in the description
// or it doesn't.

// carryingPhrases mark products whose purpose is to carry, hold or
// transport other goods.
var carryingPhrases = []string{
	"case for", "pouch for", "bag for", "holder for", "sleeve for",
	"carrying case", "carry case", "carrying bag", "tool bag", "tote",
	"backpack", "luggage", "suitcase", "briefcase", "handbag", "wallet",
	"for carrying", "to carry", "holster",
}

// toyTerms mark products intended for play.
var toyTerms = []string{
	"toy", "plaything", "doll", "action figure", "stuffed animal",
	"plush", "puzzle", "board game", "playset",
}

// jewelryTerms mark imitation jewelry and personal adornment.
var jewelryTerms = []string{
	"jewelry", "jewellery", "necklace", "bracelet", "earring", "ring",
	"pendant", "brooch", "bangle", "charm",
}

// wearableTerms mark apparel and clothing accessories.
var wearableTerms = []string{
	"shirt", "t-shirt", "pants", "trousers", "dress", "skirt", "jacket",
	"coat", "sweater", "glove", "sock", "hat", "cap", "scarf", "apparel",
	"garment", "clothing", "wear", "hoodie", "shorts", "underwear",
}

// lightingTerms mark lamps and lighting fittings.
var lightingTerms = []string{
	"lamp", "light fixture", "lighting", "chandelier", "lantern",
	"sconce", "flashlight", "torch",
}

// householdTerms mark household or domestic use context.
var householdTerms = []string{
	"household", "domestic", "home", "kitchen", "kitchenware",
	"tableware", "dinnerware", "coffee mug", "teapot", "for the home",
}

// materialTerms is the closed list of materials the extractor can infer
// from description text, in priority order: earlier entries win when a
// description mentions several.
var materialTerms = []string{
	"porcelain", "ceramic", "earthenware", "stoneware", "china",
	"stainless steel", "steel", "aluminum", "aluminium", "copper",
	"iron", "brass", "metal",
	"polyester", "nylon", "cotton", "canvas", "denim", "wool", "silk",
	"linen", "leather",
	"plastic", "silicone", "rubber",
	"glass", "crystal",
	"wood", "bamboo", "wicker", "rattan",
	"paper", "cardboard", "stone", "marble",
}

// knitTerms and wovenTerms detect textile construction.
var knitTerms = []string{"knit", "knitted", "crochet", "crocheted", "jersey"}

var wovenTerms = []string{"woven", "weave", "twill", "denim", "canvas"}

// genderAgeTerms maps scope phrases to a normalized gender/age token.
var genderAgeTerms = map[string]string{
	"men's":     "men",
	"mens":      "men",
	"for men":   "men",
	"women's":   "women",
	"womens":    "women",
	"for women": "women",
	"boys'":     "children",
	"girls'":    "children",
	"children":  "children",
	"child":     "children",
	"kids":      "children",
	"infant":    "infant",
	"baby":      "infant",
	"babies":    "infant",
	"toddler":   "infant",
	"adult":     "adult",
	"unisex":    "adult",
}

// rawMaterialTerms mark unfinished goods; their absence implies a
// finished product.
var rawMaterialTerms = []string{"raw", "scrap", "unprocessed", "waste", "ingot", "billet"}

// productTypes maps a core product noun to the chapters it plausibly
// belongs to. Order within the chapter list is broad preference only;
// routing and scoring make the actual selection.
var productTypes = map[string][]string{
	"mug":        {"69", "70", "39"},
	"cup":        {"69", "70", "39"},
	"plate":      {"69", "70", "39"},
	"bowl":       {"69", "70", "39"},
	"teapot":     {"69", "70"},
	"vase":       {"69", "70"},
	"bag":        {"42", "39", "63"},
	"backpack":   {"42"},
	"wallet":     {"42"},
	"case":       {"42", "39"},
	"shirt":      {"61", "62"},
	"t-shirt":    {"61"},
	"dress":      {"61", "62"},
	"sweater":    {"61"},
	"pants":      {"61", "62"},
	"jacket":     {"61", "62"},
	"sock":       {"61"},
	"hat":        {"65"},
	"lamp":       {"94", "85"},
	"chair":      {"94"},
	"table":      {"94"},
	"furniture":  {"94"},
	"toy":        {"95"},
	"doll":       {"95"},
	"game":       {"95"},
	"necklace":   {"71"},
	"bracelet":   {"71"},
	"earring":    {"71"},
	"knife":      {"82"},
	"spoon":      {"82"},
	"fork":       {"82"},
	"tool":       {"82"},
	"bottle":     {"39", "70"},
	"container":  {"39", "70", "73"},
	"pillow":     {"94", "63"},
	"towel":      {"63"},
	"blanket":    {"63"},
	"curtain":    {"63"},
	"shoe":       {"64"},
	"boot":       {"64"},
	"sandal":     {"64"},
	"umbrella":   {"66"},
	"clock":      {"91"},
	"watch":      {"91"},
	"instrument": {"90", "92"},
	"phone":      {"85"},
	"cable":      {"85"},
	"battery":    {"85"},
	"book":       {"49"},
	"brush":      {"96"},
	"pen":        {"96"},
	"pencil":     {"96"},
}

// stopWords are excluded from the keyword set.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "for": true, "from": true,
	"in": true, "made": true, "of": true, "on": true, "or": true,
	"the": true, "to": true, "with": true, "is": true, "by": true,
}
