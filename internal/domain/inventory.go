package domain

type Size string

const (
	SizeXS Size = "XS"
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL}

func (s Size) String() string {
	return string(s)
}

func (s Size) Valid() bool {
	for _, size := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Inventory holds the stock count of a variant per size.
type Inventory struct {
	XS int `bson:"XS" json:"XS"`
	S  int `bson:"S" json:"S"`
	M  int `bson:"M" json:"M"`
	L  int `bson:"L" json:"L"`
	XL int `bson:"XL" json:"XL"`
}

func (i Inventory) Get(size Size) int {
	switch size {
	case SizeXS:
		return i.XS
	case SizeS:
		return i.S
	case SizeM:
		return i.M
	case SizeL:
		return i.L
	case SizeXL:
		return i.XL
	}
	return 0
}

func (i *Inventory) Add(size Size, delta int) {
	switch size {
	case SizeXS:
		i.XS += delta
	case SizeS:
		i.S += delta
	case SizeM:
		i.M += delta
	case SizeL:
		i.L += delta
	case SizeXL:
		i.XL += delta
	}
}

func (i Inventory) Valid() bool {
	for _, size := range Sizes {
		if i.Get(size) < 0 {
			return false
		}
	}
	return true
}
