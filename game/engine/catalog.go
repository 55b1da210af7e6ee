package engine

// Color groups of the classic board
const (
	GroupMarrom     = "marrom"
	GroupAzulClaro  = "azul-claro"
	GroupRosa       = "rosa"
	GroupLaranja    = "laranja"
	GroupVermelho   = "vermelho"
	GroupAmarelo    = "amarelo"
	GroupVerde      = "verde"
	GroupAzulEscuro = "azul-escuro"
)

const (
	stationCount = 4
	utilityCount = 2
)

// spaceSpec is one row of the static board table.
type spaceSpec struct {
	name  string
	kind  SpaceKind
	tax   int
	price int
	group string
	rents []int
	house int
}

func deedRow(name, group string, price, house int, rents ...int) spaceSpec {
	return spaceSpec{name: name, kind: SpaceProperty, price: price, group: group, rents: rents, house: house}
}

// classicLayout lists the 40 spaces in board order.
var classicLayout = []spaceSpec{
	{name: "Ponto de Partida", kind: SpaceStart},
	deedRow("Av. Sumaré", GroupMarrom, 60, 50, 10, 30, 90, 160, 250, 350),
	{name: "Cofre", kind: SpaceChest},
	deedRow("Av. Presidente Vargas", GroupMarrom, 60, 50, 20, 60, 180, 320, 450, 550),
	{name: "Imposto de Renda", kind: SpaceTax, tax: 200},
	{name: "Estação da Luz", kind: SpaceStation, price: 200},
	deedRow("Av. São João", GroupAzulClaro, 100, 50, 6, 30, 90, 270, 400, 550),
	{name: "Sorte ou Revés", kind: SpaceChance},
	deedRow("Av. Ipiranga", GroupAzulClaro, 100, 50, 6, 30, 90, 270, 400, 550),
	deedRow("Rua 25 de Março", GroupAzulClaro, 120, 50, 8, 40, 100, 300, 450, 600),
	{name: "Prisão", kind: SpaceJail},
	deedRow("Av. Brigadeiro Faria Lima", GroupRosa, 140, 100, 10, 50, 150, 450, 625, 750),
	{name: "Companhia Elétrica", kind: SpaceUtility, price: 150},
	deedRow("Av. Rebouças", GroupRosa, 140, 100, 10, 50, 150, 450, 625, 750),
	deedRow("Av. 9 de Julho", GroupRosa, 160, 100, 12, 60, 180, 500, 700, 900),
	{name: "Estação Sé", kind: SpaceStation, price: 200},
	deedRow("Av. Europa", GroupLaranja, 180, 100, 14, 70, 200, 550, 750, 950),
	{name: "Cofre", kind: SpaceChest},
	deedRow("Rua Augusta", GroupLaranja, 180, 100, 14, 70, 200, 550, 750, 950),
	deedRow("Av. Pacaembu", GroupLaranja, 200, 100, 16, 80, 220, 600, 800, 1000),
	{name: "Parada Livre", kind: SpaceFreeParking},
	deedRow("Av. Brasil", GroupVermelho, 220, 150, 18, 90, 250, 700, 875, 1050),
	{name: "Sorte ou Revés", kind: SpaceChance},
	deedRow("Av. Paulista", GroupVermelho, 220, 150, 18, 90, 250, 700, 875, 1050),
	deedRow("Jardim Paulista", GroupVermelho, 240, 150, 20, 100, 300, 750, 925, 1100),
	{name: "Estação Central do Brasil", kind: SpaceStation, price: 200},
	deedRow("Av. Atlântica", GroupAmarelo, 260, 150, 22, 110, 330, 800, 975, 1150),
	deedRow("Av. Vieira Souto", GroupAmarelo, 260, 150, 22, 110, 330, 800, 975, 1150),
	{name: "Companhia de Saneamento", kind: SpaceUtility, price: 150},
	deedRow("Copacabana", GroupAmarelo, 280, 150, 24, 120, 360, 850, 1025, 1200),
	{name: "Vá para a Prisão", kind: SpaceGoToJail},
	deedRow("Av. Niemeyer", GroupVerde, 300, 200, 26, 130, 390, 900, 1100, 1275),
	deedRow("Ipanema", GroupVerde, 300, 200, 26, 130, 390, 900, 1100, 1275),
	{name: "Cofre", kind: SpaceChest},
	deedRow("Leblon", GroupVerde, 320, 200, 28, 150, 450, 1000, 1200, 1400),
	{name: "Estação Júlio Prestes", kind: SpaceStation, price: 200},
	{name: "Sorte ou Revés", kind: SpaceChance},
	deedRow("Av. Morumbi", GroupAzulEscuro, 350, 200, 35, 175, 500, 1100, 1300, 1500),
	{name: "Taxa de Riqueza", kind: SpaceTax, tax: 100},
	deedRow("Interlagos", GroupAzulEscuro, 400, 200, 50, 200, 600, 1400, 1700, 2000),
}

// buildInstrument creates the instrument described by an ownable row.
func (s spaceSpec) buildInstrument() (*Instrument, error) {
	mortgage := s.price / 2
	switch s.kind {
	case SpaceProperty:
		return NewDeed(s.name, s.price, mortgage, DeedTerms{
			Group:     s.group,
			Rents:     s.rents,
			HouseCost: s.house,
			HotelCost: s.house,
		})
	case SpaceStation:
		return NewStation(s.name, s.price, mortgage)
	case SpaceUtility:
		return NewUtility(s.name, s.price, mortgage)
	}
	return nil, nil
}
