package engine

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source источник случайности для одного спина. IntN возвращает значение в [0, n)
type Source interface {
	IntN(n int) int
}

// NewSeededSource детерминированный источник для симуляций и тестов
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSecureSource источник для живой игры: ChaCha8 с сидом из crypto/rand
func NewSecureSource() (Source, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return rand.New(rand.NewChaCha8(seed)), nil
}

// FairSource проверяемый источник: поток байт HMAC-SHA256(serverSeed, "clientSeed:nonce:round")
type FairSource struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	buf        [sha256.Size]byte
}

// NewFairSource создает источник, воспроизводимый по паре сидов и nonce
func NewFairSource(serverSeed, clientSeed string, nonce uint64) *FairSource {
	f := &FairSource{serverSeed: serverSeed, clientSeed: clientSeed, nonce: nonce}
	f.fill()
	return f
}

func (f *FairSource) fill() {
	h := hmac.New(sha256.New, []byte(f.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", f.clientSeed, f.nonce, f.round)
	copy(f.buf[:], h.Sum(nil))
	f.pos = 0
}

func (f *FairSource) next() byte {
	if f.pos >= len(f.buf) {
		f.round++
		f.fill()
	}
	b := f.buf[f.pos]
	f.pos++
	return b
}

// Float возвращает число в [0, 1) из четырех байт потока
func (f *FairSource) Float() float64 {
	var b [4]byte
	for i := range b {
		b[i] = f.next()
	}
	return float64(binary.BigEndian.Uint32(b[:])) / (1 << 32)
}

func (f *FairSource) IntN(n int) int {
	if n <= 0 {
		panic("engine: IntN with non-positive n")
	}
	return int(f.Float() * float64(n))
}

// Drawer выбирает символы для заполнения поля
type Drawer struct {
	symbols []Symbol
	weights []int
	total   int
}

// NewUniformDrawer равномерный выбор по всему каталогу
func NewUniformDrawer() *Drawer {
	return &Drawer{symbols: Catalog()}
}

// NewWeightedDrawer выбор по весам; порядок обхода совпадает с каталогом.
// Пустые веса означают равномерный выбор
func NewWeightedDrawer(weights map[Symbol]int) (*Drawer, error) {
	if len(weights) == 0 {
		return NewUniformDrawer(), nil
	}
	d := &Drawer{}
	for sym := range weights {
		if !sym.Known() {
			return nil, fmt.Errorf("weight for unknown symbol %q", sym)
		}
	}
	for _, sym := range catalog {
		w := weights[sym]
		if w < 0 {
			return nil, fmt.Errorf("negative weight for %q", sym)
		}
		if w == 0 {
			continue
		}
		d.symbols = append(d.symbols, sym)
		d.weights = append(d.weights, w)
		d.total += w
	}
	if d.total == 0 {
		return nil, fmt.Errorf("all symbol weights are zero")
	}
	return d, nil
}

// Draw выбирает один символ
func (d *Drawer) Draw(src Source) Symbol {
	if d.weights == nil {
		return d.symbols[src.IntN(len(d.symbols))]
	}
	n := src.IntN(d.total)
	for i, w := range d.weights {
		if n < w {
			return d.symbols[i]
		}
		n -= w
	}
	return d.symbols[len(d.symbols)-1]
}

// Fill заполняет поле построчно
func (d *Drawer) Fill(g *Grid, src Source) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			g.Set(r, c, d.Draw(src))
		}
	}
}
