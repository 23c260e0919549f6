// Package pagination genera la ventana acotada de números de página que la UI
// muestra en los listados. Función pura y determinista.
package pagination

// Entry es un elemento de la ventana: un número de página o una elipsis.
// Las elipsis son marcadores no interactivos para quien renderiza.
type Entry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func page(n int) Entry { return Entry{Page: n} }

func ellipsis() Entry { return Entry{Ellipsis: true} }

// Window devuelve la secuencia de páginas a mostrar para (currentPage, totalPages):
//
//	totalPages <= 5              → [1 .. totalPages]
//	currentPage <= 3             → [1 2 3 4 5 … totalPages]
//	currentPage >= totalPages-2  → [1 … totalPages-4 .. totalPages]
//	resto                        → [1 … cur-1 cur cur+1 … totalPages]
//
// Siempre contiene la página 1 y totalPages (cuando totalPages >= 1) y los
// números, leídos de izquierda a derecha, son estrictamente crecientes.
func Window(currentPage, totalPages int) []Entry {
	if totalPages < 1 {
		return nil
	}
	if totalPages <= 5 {
		out := make([]Entry, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			out = append(out, page(p))
		}
		return out
	}

	switch {
	case currentPage <= 3:
		return []Entry{page(1), page(2), page(3), page(4), page(5), ellipsis(), page(totalPages)}
	case currentPage >= totalPages-2:
		out := []Entry{page(1), ellipsis()}
		for p := totalPages - 4; p <= totalPages; p++ {
			out = append(out, page(p))
		}
		return out
	default:
		return []Entry{
			page(1), ellipsis(),
			page(currentPage - 1), page(currentPage), page(currentPage + 1),
			ellipsis(), page(totalPages),
		}
	}
}
