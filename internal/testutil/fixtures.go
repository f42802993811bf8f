package testutil

import "github.com/chrishsmith/sourcify-sub003/internal/model"

// Node builds an HtsNode with the level derived from the code length
// and the parent derived from the code prefix.
func Node(code, description, rate string) model.HtsNode {
	return model.HtsNode{
		Code:        code,
		Level:       model.LevelForCode(code),
		Description: description,
		ParentCode:  model.ParentCodeOf(code),
		GeneralRate: rate,
	}
}

// CeramicsFixture is a small chapter 69 subtree covering ceramic
// tableware down to statistical suffixes, with a duty rate carried at
// the tariff line so statistical lines inherit it.
func CeramicsFixture() []model.HtsNode {
	return []model.HtsNode{
		Node("69", "Ceramic products", ""),
		Node("6911", "Tableware, kitchenware, other household articles, of porcelain or china", ""),
		Node("691110", "Tableware and kitchenware of porcelain or china", ""),
		Node("69111010", "Hotel or restaurant ware of porcelain", "20.8"),
		Node("6911101000", "Hotel or restaurant ware of porcelain", ""),
		Node("6912", "Ceramic tableware, kitchenware, other household articles, other than of porcelain or china", ""),
		Node("691200", "Ceramic tableware and kitchenware, other than of porcelain or china", ""),
		Node("69120048", "Other ceramic tableware and kitchenware", "9.8"),
		Node("6912004810", "Suitable for food or drink contact, mugs and steins", ""),
		Node("6912004820", "Suitable for food or drink contact, other", ""),
	}
}

// BagsFixture is a chapter 42 subtree for carrying articles plus the
// chapter 63 textile chapter the material router would otherwise pick
// for canvas goods.
func BagsFixture() []model.HtsNode {
	return []model.HtsNode{
		Node("42", "Articles of leather; travel goods, handbags and similar containers", ""),
		Node("4202", "Trunks, suitcases, handbags, tool bags and similar containers", ""),
		Node("420292", "Containers with outer surface of sheeting of plastics or of textile materials", ""),
		Node("42029290", "Other containers, with outer surface of textile materials", "17.6"),
		Node("4202929060", "Other, of cotton", ""),
		Node("4202929091", "Other, of man-made fibers", ""),
		Node("63", "Other made up textile articles", ""),
		Node("6307", "Other made up articles, including dress patterns", ""),
	}
}

// GlasswareFixture is a chapter 70 subtree for household glassware.
func GlasswareFixture() []model.HtsNode {
	return []model.HtsNode{
		Node("70", "Glass and glassware", ""),
		Node("7013", "Glassware of a kind used for table, kitchen, toilet, office or indoor decoration", ""),
		Node("701337", "Drinking glasses, other than of glass-ceramics", ""),
		Node("70133750", "Other drinking glasses, valued over $0.30 but not over $3 each", "30"),
		Node("7013375000", "Other drinking glasses", ""),
	}
}

// FullFixture merges the standard subtrees into one hierarchy.
func FullFixture() []model.HtsNode {
	var nodes []model.HtsNode
	nodes = append(nodes, CeramicsFixture()...)
	nodes = append(nodes, BagsFixture()...)
	nodes = append(nodes, GlasswareFixture()...)
	return nodes
}
