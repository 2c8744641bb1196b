package domain

// DefaultNodes is the built-in transit network of regional hubs.
func DefaultNodes() []TransitNode {
	return []TransitNode{
		{Code: "DEL", Name: "Delhi Hub", X: 350, Y: 80},
		{Code: "JAI", Name: "Jaipur Hub", X: 230, Y: 160},
		{Code: "LKO", Name: "Lucknow Hub", X: 490, Y: 120},
		{Code: "KNP", Name: "Kanpur Hub", X: 440, Y: 200},
		{Code: "AMD", Name: "Ahmedabad Hub", X: 140, Y: 310},
		{Code: "BPL", Name: "Bhopal Hub", X: 340, Y: 310},
		{Code: "KOL", Name: "Kolkata Hub", X: 620, Y: 340},
		{Code: "MUM", Name: "Mumbai Hub", X: 110, Y: 440},
		{Code: "PNQ", Name: "Pune Hub", X: 170, Y: 510},
		{Code: "NAG", Name: "Nagpur Hub", X: 390, Y: 400},
		{Code: "HYD", Name: "Hyderabad Hub", X: 340, Y: 530},
		{Code: "BBI", Name: "Bhubaneswar Hub", X: 560, Y: 470},
		{Code: "VTZ", Name: "Visakhapatnam Hub", X: 480, Y: 540},
		{Code: "BLR", Name: "Bangalore Hub", X: 290, Y: 660},
		{Code: "CHN", Name: "Chennai Hub", X: 410, Y: 670},
	}
}

// DefaultEdges are the travel times, in hours, between the built-in hubs.
func DefaultEdges() []Edge {
	return []Edge{
		{From: "DEL", To: "JAI", Hours: 5},
		{From: "DEL", To: "LKO", Hours: 9},
		{From: "DEL", To: "KNP", Hours: 8},
		{From: "JAI", To: "AMD", Hours: 10},
		{From: "JAI", To: "BPL", Hours: 11},
		{From: "LKO", To: "KNP", Hours: 3},
		{From: "LKO", To: "KOL", Hours: 15},
		{From: "KNP", To: "BPL", Hours: 9},
		{From: "AMD", To: "MUM", Hours: 8},
		{From: "MUM", To: "PNQ", Hours: 3},
		{From: "PNQ", To: "BLR", Hours: 14},
		{From: "BPL", To: "NAG", Hours: 6},
		{From: "NAG", To: "HYD", Hours: 8},
		{From: "NAG", To: "KOL", Hours: 13},
		{From: "HYD", To: "BLR", Hours: 10},
		{From: "HYD", To: "VTZ", Hours: 9},
		{From: "BLR", To: "CHN", Hours: 6},
		{From: "CHN", To: "VTZ", Hours: 12},
		{From: "VTZ", To: "BBI", Hours: 7},
		{From: "BBI", To: "KOL", Hours: 8},
		{From: "MUM", To: "HYD", Hours: 13},
		{From: "PNQ", To: "HYD", Hours: 10},
	}
}

// DefaultGraph builds the built-in network.
func DefaultGraph() *Graph {
	g, err := NewGraph(DefaultNodes(), DefaultEdges())
	if err != nil {
		panic(err)
	}
	return g
}
