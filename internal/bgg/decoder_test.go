package bgg

import (
	"testing"

	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
)

func TestDecodeItemsUniformCardinality(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    int
	}{
		{"zero items", `<items total="0"></items>`, 0},
		{"single item without wrapper", `<items><item id="13"><name type="primary" value="Catan"/></item></items>`, 1},
		{"many items", `<items><item id="1"/><item id="2"/><item id="3"/></items>`, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := DecodeItems([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(items) != tc.want {
				t.Fatalf("expected %d items, got %d", tc.want, len(items))
			}
		})
	}
}

func TestDecodeItemsEmptyPayload(t *testing.T) {
	_, err := DecodeItems(nil)
	if !pkgerrors.Is(err, pkgerrors.CodeUpstream) {
		t.Fatalf("expected upstream format error, got %v", err)
	}
}

func TestDecodeItemsMalformedPayload(t *testing.T) {
	_, err := DecodeItems([]byte(`<<not xml`))
	if !pkgerrors.Is(err, pkgerrors.CodeUpstream) {
		t.Fatalf("expected upstream format error, got %v", err)
	}
}

func TestDecodeItemSingle(t *testing.T) {
	item, err := DecodeItem([]byte(`<items><item id="13"><name type="primary" value="Catan"/></item></items>`))
	if err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if item.ID != "13" {
		t.Fatalf("expected id 13, got %q", item.ID)
	}
}

func TestDecodeItemEmptyDocument(t *testing.T) {
	_, err := DecodeItem([]byte(`<items total="0"></items>`))
	if !pkgerrors.Is(err, pkgerrors.CodeUpstream) {
		t.Fatalf("expected upstream format error for empty document, got %v", err)
	}
}
