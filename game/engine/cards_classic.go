package engine

type cardSpec struct {
	action      CardAction
	description string
	params      CardParams
}

var classicChance = []cardSpec{
	{ActionAdvanceToStart, "Avance até o Ponto de Partida e receba 200.", CardParams{Amount: 200}},
	{ActionAdvanceTo, "Avance até Interlagos.", CardParams{Destination: "Interlagos"}},
	{ActionAdvanceTo, "Avance até a Av. Brasil. Se passar pelo Ponto de Partida, receba 200.", CardParams{Destination: "Av. Brasil"}},
	{ActionAdvanceTo, "Avance até a Av. Brigadeiro Faria Lima.", CardParams{Destination: "Av. Brigadeiro Faria Lima"}},
	{ActionAdvanceTo, "Faça uma viagem pela Estação da Luz.", CardParams{Destination: "Estação da Luz"}},
	{ActionAdvanceToNearestStation, "Avance até a estação mais próxima e pague o dobro do aluguel ao dono.", CardParams{Multiplier: 2}},
	{ActionAdvanceToNearestStation, "Avance até a estação mais próxima e pague o dobro do aluguel ao dono.", CardParams{Multiplier: 2}},
	{ActionAdvanceToNearestUtility, "Avance até a companhia mais próxima e pague dez vezes o valor dos dados.", CardParams{Multiplier: 10}},
	{ActionGrantMoney, "O banco paga dividendos de 50.", CardParams{Amount: 50}},
	{ActionGrantLeaveJailCard, "Saia livre da prisão. Guarde este cartão até precisar.", CardParams{}},
	{ActionMoveBack, "Volte três casas.", CardParams{Steps: 3}},
	{ActionGoToJail, "Vá para a prisão sem passar pelo Ponto de Partida.", CardParams{}},
	{ActionChargePerBuilding, "Reformas gerais: pague 25 por casa e 100 por hotel.", CardParams{HouseFee: 25, HotelFee: 100}},
	{ActionChargeMoney, "Multa por excesso de velocidade: pague 15.", CardParams{Amount: 15}},
	{ActionChargeAllOpponents, "Você foi eleito presidente do conselho. Pague 50 a cada jogador.", CardParams{Amount: 50}},
	{ActionGrantMoney, "Seu empréstimo imobiliário venceu. Receba 150.", CardParams{Amount: 150}},
}

var classicChest = []cardSpec{
	{ActionAdvanceToStart, "Avance até o Ponto de Partida e receba 200.", CardParams{Amount: 200}},
	{ActionGrantMoney, "Erro do banco a seu favor. Receba 200.", CardParams{Amount: 200}},
	{ActionChargeMoney, "Consulta médica: pague 50.", CardParams{Amount: 50}},
	{ActionGrantMoney, "Venda de ações: receba 50.", CardParams{Amount: 50}},
	{ActionGrantLeaveJailCard, "Saia livre da prisão. Guarde este cartão até precisar.", CardParams{}},
	{ActionGoToJail, "Vá para a prisão sem passar pelo Ponto de Partida.", CardParams{}},
	{ActionGrantMoney, "Fundo de férias rendeu. Receba 100.", CardParams{Amount: 100}},
	{ActionGrantMoney, "Restituição do imposto de renda: receba 20.", CardParams{Amount: 20}},
	{ActionChargeAllOpponents, "É seu aniversário! Cada jogador lhe dá 10.", CardParams{Amount: 10}},
	{ActionGrantMoney, "Seguro de vida venceu. Receba 100.", CardParams{Amount: 100}},
	{ActionChargeMoney, "Despesas hospitalares: pague 100.", CardParams{Amount: 100}},
	{ActionChargeMoney, "Mensalidade escolar: pague 50.", CardParams{Amount: 50}},
	{ActionGrantMoney, "Honorários de consultoria: receba 25.", CardParams{Amount: 25}},
	{ActionChargePerBuilding, "Reparos nas ruas: pague 40 por casa e 115 por hotel.", CardParams{HouseFee: 40, HotelFee: 115}},
	{ActionGrantMoney, "Segundo lugar no concurso de beleza: receba 10.", CardParams{Amount: 10}},
	{ActionGrantMoney, "Herança: receba 100.", CardParams{Amount: 100}},
}

// ClassicChanceCards builds the "Sorte ou Revés" deck in table order
func ClassicChanceCards() ([]*EventCard, error) {
	return buildCards(DeckChance, classicChance)
}

// ClassicChestCards builds the "Cofre" deck in table order
func ClassicChestCards() ([]*EventCard, error) {
	return buildCards(DeckChest, classicChest)
}

func buildCards(deck DeckKind, specs []cardSpec) ([]*EventCard, error) {
	cards := make([]*EventCard, 0, len(specs))
	for _, s := range specs {
		card, err := NewEventCard(deck, s.action, s.description, s.params)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
