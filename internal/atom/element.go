package atom

type Element struct {
	Number int
	Symbol string
	Name   string
}

var elements = []Element{
	{1, "H", "hydrogen"},
	{2, "He", "helium"},
	{3, "Li", "lithium"},
	{4, "Be", "beryllium"},
	{5, "B", "boron"},
	{6, "C", "carbon"},
	{7, "N", "nitrogen"},
	{8, "O", "oxygen"},
	{9, "F", "fluorine"},
	{10, "Ne", "neon"},
}

// ElementFor looks up an element by proton count.
func ElementFor(protons int) (Element, bool) {
	if protons < 1 || protons > len(elements) {
		return Element{}, false
	}
	return elements[protons-1], true
}
