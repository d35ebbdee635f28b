package convert

import (
	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/game/table"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// CardToInfo converts a card.Card to its wire form.
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Kind:  int(c.Kind),
		Value: c.Value,
	}
}

// CardsToInfos converts a slice of cards.
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// HandToInfos converts a dealt hand, keeping deal order.
func HandToInfos(h table.Hand) []protocol.CardInfo {
	return CardsToInfos(h[:])
}

func InfoToCard(info protocol.CardInfo) card.Card {
	return card.Card{
		Kind:  card.Kind(info.Kind),
		Value: info.Value,
	}
}

func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		cards[i] = InfoToCard(info)
	}
	return cards
}
