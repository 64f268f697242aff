package domain

import (
	"encoding/json"

	"github.com/alimikegami/apparel-store/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type Variant struct {
	Color      string    `bson:"color" json:"color"`
	FrontImage string    `bson:"frontImage" json:"frontImage"`
	BackImage  string    `bson:"backImage" json:"backImage"`
	Inventory  Inventory `bson:"inventory" json:"inventory"`
}

// VariantSet keeps variants in their stored order and indexes them by color.
// It is encoded as a plain array in both BSON and JSON.
type VariantSet struct {
	items []Variant
	index map[string]int
}

// NewVariantSet rejects empty and repeated colors and negative stock.
func NewVariantSet(variants []Variant) (VariantSet, error) {
	set := VariantSet{
		items: make([]Variant, 0, len(variants)),
		index: make(map[string]int, len(variants)),
	}

	for _, v := range variants {
		if v.Color == "" || !v.Inventory.Valid() {
			return VariantSet{}, errs.ErrInvalidVariants
		}
		if _, ok := set.index[v.Color]; ok {
			return VariantSet{}, errs.ErrDuplicateVariantColor
		}
		set.index[v.Color] = len(set.items)
		set.items = append(set.items, v)
	}

	return set, nil
}

// load trusts stored data; on a repeated color the first variant wins.
func (s *VariantSet) load(variants []Variant) {
	s.items = variants
	s.index = make(map[string]int, len(variants))
	for i, v := range variants {
		if _, ok := s.index[v.Color]; !ok {
			s.index[v.Color] = i
		}
	}
}

func (s VariantSet) Find(color string) (Variant, bool) {
	i, ok := s.index[color]
	if !ok {
		return Variant{}, false
	}
	return s.items[i], true
}

func (s VariantSet) Len() int {
	return len(s.items)
}

func (s VariantSet) List() []Variant {
	out := make([]Variant, len(s.items))
	copy(out, s.items)
	return out
}

func (s VariantSet) ImageURLs() []string {
	var urls []string
	for _, v := range s.items {
		if v.FrontImage != "" {
			urls = append(urls, v.FrontImage)
		}
		if v.BackImage != "" {
			urls = append(urls, v.BackImage)
		}
	}
	return urls
}

func (s VariantSet) encodable() []Variant {
	if s.items == nil {
		return []Variant{}
	}
	return s.items
}

func (s VariantSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encodable())
}

func (s *VariantSet) UnmarshalJSON(data []byte) error {
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	s.load(variants)
	return nil
}

func (s VariantSet) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.encodable())
}

func (s *VariantSet) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var variants []Variant
	if t != bson.TypeNull {
		if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&variants); err != nil {
			return err
		}
	}
	s.load(variants)
	return nil
}
