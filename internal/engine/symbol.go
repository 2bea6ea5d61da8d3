package engine

import (
	"fmt"
)

// Symbol токен символа на поле
type Symbol string

// Пустая ячейка. Существует только внутри разрешения каскада
const Empty Symbol = ""

const (
	Low1  Symbol = "l1"
	Low2  Symbol = "l2"
	Low3  Symbol = "l3"
	Low4  Symbol = "l4"
	High1 Symbol = "h1"
	High2 Symbol = "h2"
	High3 Symbol = "h3"
	High4 Symbol = "h4"

	Scatter Symbol = "s"
	Wild    Symbol = "w"

	Mult2  Symbol = "2X"
	Mult4  Symbol = "4X"
	Mult5  Symbol = "5X"
	Mult7  Symbol = "7X"
	Mult10 Symbol = "10X"
)

// Category категория символа
type Category string

const (
	CategoryLow        Category = "low"
	CategoryHigh       Category = "high"
	CategoryScatter    Category = "scatter"
	CategoryWild       Category = "wild"
	CategoryMultiplier Category = "multiplier"
)

type symbolInfo struct {
	category Category
	factor   int
}

// Порядок каталога фиксирован: равномерный выбор отображает IntN(len) именно на него
var catalog = []Symbol{
	Low1, Low2, Low3, Low4,
	High1, High2, High3, High4,
	Scatter, Wild,
	Mult2, Mult4, Mult5, Mult7, Mult10,
}

var symbols = map[Symbol]symbolInfo{
	Low1:    {category: CategoryLow},
	Low2:    {category: CategoryLow},
	Low3:    {category: CategoryLow},
	Low4:    {category: CategoryLow},
	High1:   {category: CategoryHigh},
	High2:   {category: CategoryHigh},
	High3:   {category: CategoryHigh},
	High4:   {category: CategoryHigh},
	Scatter: {category: CategoryScatter},
	Wild:    {category: CategoryWild},
	Mult2:   {category: CategoryMultiplier, factor: 2},
	Mult4:   {category: CategoryMultiplier, factor: 4},
	Mult5:   {category: CategoryMultiplier, factor: 5},
	Mult7:   {category: CategoryMultiplier, factor: 7},
	Mult10:  {category: CategoryMultiplier, factor: 10},
}

// Catalog возвращает копию каталога в каноническом порядке
func Catalog() []Symbol {
	out := make([]Symbol, len(catalog))
	copy(out, catalog)
	return out
}

// ParseSymbol разбирает токен символа
func ParseSymbol(token string) (Symbol, error) {
	s := Symbol(token)
	if _, ok := symbols[s]; !ok {
		return Empty, fmt.Errorf("unknown symbol %q", token)
	}
	return s, nil
}

// Category возвращает категорию символа; для неизвестного токена пустую строку
func (s Symbol) Category() Category {
	return symbols[s].category
}

// Known сообщает, входит ли символ в каталог
func (s Symbol) Known() bool {
	_, ok := symbols[s]
	return ok
}

// IsMatchable сообщает, может ли символ быть затравкой кластера (low, high или wild)
func (s Symbol) IsMatchable() bool {
	switch s.Category() {
	case CategoryLow, CategoryHigh, CategoryWild:
		return true
	}
	return false
}

func (s Symbol) IsWild() bool { return s == Wild }

func (s Symbol) IsScatter() bool { return s == Scatter }

func (s Symbol) IsMultiplier() bool { return s.Category() == CategoryMultiplier }

// MultiplierValue возвращает множитель ячейки-множителя
func (s Symbol) MultiplierValue() (int, bool) {
	info, ok := symbols[s]
	if !ok || info.category != CategoryMultiplier {
		return 0, false
	}
	return info.factor, true
}

func (s Symbol) String() string { return string(s) }
