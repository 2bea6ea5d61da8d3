package engine

// Resolve убирает выигрышные ячейки, сдвигает выжившие символы вниз по колонкам
// с сохранением порядка и дозаполняет верх колонок новыми символами.
// Исходное поле не меняется
func Resolve(g *Grid, winning []Position, d *Drawer, src Source) *Grid {
	next := g.Clone()
	for _, p := range winning {
		next.Set(p.Row, p.Col, Empty)
	}

	for c := 0; c < next.Cols(); c++ {
		// Снизу вверх переносим непустые символы на свободное место
		write := next.Rows() - 1
		for r := next.Rows() - 1; r >= 0; r-- {
			sym := next.At(r, c)
			if sym == Empty {
				continue
			}
			next.Set(write, c, sym)
			write--
		}
		// Освободившийся верх колонки дозаполняем снизу вверх
		for r := write; r >= 0; r-- {
			next.Set(r, c, d.Draw(src))
		}
	}
	return next
}
