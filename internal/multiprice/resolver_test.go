package multiprice

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

var (
	unitID  = uuid.New()
	dozenID = uuid.New()
	kgID    = uuid.New()
)

// stubConverter knows unit and dozen (same category) and kg (another category).
type stubConverter struct {
	calls int
}

func (s *stubConverter) ConvertPrice(price decimal.Decimal, from, to uuid.UUID) (decimal.Decimal, error) {
	s.calls++
	factors := map[uuid.UUID]decimal.Decimal{
		unitID:  decimal.NewFromInt(1),
		dozenID: decimal.NewFromInt(1).Div(decimal.NewFromInt(12)),
	}
	fromFactor, okFrom := factors[from]
	toFactor, okTo := factors[to]
	if !okFrom || !okTo {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeUomIncompatible, "incompatible")
	}
	return price.Mul(fromFactor).Div(toFactor), nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if !dec(want).Equal(got) {
		t.Fatalf("expected %s, got %s", want, got.String())
	}
}

func newTemplate(slotPrices map[uuid.UUID]decimal.Decimal) Product {
	id := uuid.New()
	return Product{
		ID:             id,
		TemplateID:     id,
		UomID:          unitID,
		PurchaseUomID:  unitID,
		TemplatePrices: slotPrices,
	}
}

func multiPriceRule(slot uuid.UUID) Rule {
	return Rule{
		ComputePrice:     enums.ComputePriceFormula,
		Base:             enums.PricelistBaseMultiPrice,
		MultiPriceNameID: &slot,
	}
}

func TestGetMultiPricePriceFormulaSteps(t *testing.T) {
	slot1 := uuid.New()
	slot2 := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{
		slot1: dec("5.5"),
		slot2: dec("20"),
	})
	resolver := NewResolver(&stubConverter{})
	rule := multiPriceRule(slot1)

	price, err := resolver.GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "5.5", price)

	rule.PriceDiscount = dec("10")
	price, err = resolver.GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "4.95", price)

	rule.PriceSurcharge = dec("1")
	price, err = resolver.GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "5.95", price)

	rule.PriceMaxMargin = dec("1")
	rule.PriceMinMargin = dec("0.5")
	price, err = resolver.GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.GreaterThan(dec("5.95")) || !price.LessThan(dec("6.95")) {
		t.Fatalf("margins should keep the price within bounds, got %s", price)
	}
	assertDecimal(t, "6", price)

	other := multiPriceRule(slot2)
	price, err = resolver.GetMultiPricePrice(product, other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "20", price)
}

func TestGetMultiPricePriceIdentityWithoutAdjustments(t *testing.T) {
	resolver := NewResolver(nil)
	for _, base := range []string{"0", "0.01", "5.5", "1234.5678"} {
		slot := uuid.New()
		product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec(base)})
		price, err := resolver.GetMultiPricePrice(product, multiPriceRule(slot))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, base, price)
	}
}

func TestGetMultiPricePriceMaxMarginCaps(t *testing.T) {
	slot := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec("10")})
	rule := multiPriceRule(slot)
	rule.PriceSurcharge = dec("5")
	rule.PriceMaxMargin = dec("2")

	price, err := NewResolver(nil).GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "12", price)
}

func TestGetMultiPricePriceMinMarginWinsWhenBoundsCross(t *testing.T) {
	slot := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec("10")})
	rule := multiPriceRule(slot)
	rule.PriceMaxMargin = dec("1")
	rule.PriceMinMargin = dec("3")

	price, err := NewResolver(nil).GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "13", price)
}

func TestGetMultiPricePriceNegativeDiscountMarksUp(t *testing.T) {
	slot := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec("8")})
	rule := multiPriceRule(slot)
	rule.PriceDiscount = dec("-25")

	price, err := NewResolver(nil).GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "10", price)
}

func TestGetMultiPricePriceMissingEntryPricesFromZero(t *testing.T) {
	product := newTemplate(map[uuid.UUID]decimal.Decimal{uuid.New(): dec("7")})
	rule := multiPriceRule(uuid.New())
	rule.PriceSurcharge = dec("1.5")

	price, err := NewResolver(nil).GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "1.5", price)
}

func TestGetMultiPricePriceRequiresSlot(t *testing.T) {
	rule := Rule{ComputePrice: enums.ComputePriceFormula, Base: enums.PricelistBaseMultiPrice}
	_, err := NewResolver(nil).GetMultiPricePrice(newTemplate(nil), rule)
	if err == nil {
		t.Fatal("expected error")
	}
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidRule) {
		t.Fatalf("expected CodeInvalidRule, got %v", err)
	}

	nilSlot := uuid.Nil
	rule.MultiPriceNameID = &nilSlot
	_, err = NewResolver(nil).GetMultiPricePrice(newTemplate(nil), rule)
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidRule) {
		t.Fatalf("expected CodeInvalidRule, got %v", err)
	}
}

func TestVariantFallsBackToTemplateBySlot(t *testing.T) {
	slot1 := uuid.New()
	slot2 := uuid.New()
	templateID := uuid.New()
	variant := Product{
		ID:         uuid.New(),
		TemplateID: templateID,
		IsVariant:  true,
		UomID:      unitID,
		TemplatePrices: map[uuid.UUID]decimal.Decimal{
			slot1: dec("5.5"),
			slot2: dec("20"),
		},
		VariantPrices: map[uuid.UUID]decimal.Decimal{
			slot1: dec("6.6"),
		},
	}
	resolver := NewResolver(nil)

	rule := multiPriceRule(slot1)
	rule.PriceDiscount = dec("10")
	price, err := resolver.GetMultiPricePrice(variant, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "5.94", price)

	price, err = resolver.GetMultiPricePrice(variant, multiPriceRule(slot2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "20", price)

	effective := variant.EffectivePrices()
	if len(effective) != 2 {
		t.Fatalf("expected 2 effective prices got %d", len(effective))
	}
	assertDecimal(t, "6.6", effective[slot1])
	assertDecimal(t, "20", effective[slot2])
}

func TestGetMultiPricePriceIsDeterministicAndPure(t *testing.T) {
	slot := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec("5.5")})
	rule := multiPriceRule(slot)
	rule.PriceDiscount = dec("10")
	rule.PriceSurcharge = dec("1")
	resolver := NewResolver(nil)

	first, err := resolver.GetMultiPricePrice(product, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]decimal.Decimal, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = resolver.GetMultiPricePrice(product, rule)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		if !first.Equal(got) {
			t.Fatalf("expected %s got %s", first, got)
		}
	}
	assertDecimal(t, "5.5", product.TemplatePrices[slot])
	assertDecimal(t, "10", rule.PriceDiscount)
}

func TestComputePriceDispatch(t *testing.T) {
	slot := uuid.New()
	product := newTemplate(map[uuid.UUID]decimal.Decimal{slot: dec("5.5")})
	resolver := NewResolver(&stubConverter{})

	standardCalls := 0
	standard := func(req ComputeRequest) (decimal.Decimal, error) {
		standardCalls++
		return dec("1"), nil
	}

	rule := multiPriceRule(slot)
	rule.PriceDiscount = dec("10")
	req := ComputeRequest{Product: product, Quantity: dec("1"), Date: time.Now(), Rule: rule}

	t.Run("multi price formula delegates", func(t *testing.T) {
		price, err := resolver.ComputePrice(req, standard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "4.95", price)
		if standardCalls != 0 {
			t.Fatalf("expected 0 standard calls, got %d", standardCalls)
		}
	})

	t.Run("reprice guard defers to standard", func(t *testing.T) {
		guarded := req
		guarded.IsReprice = true
		price, err := resolver.ComputePrice(guarded, standard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "1", price)
		if standardCalls != 1 {
			t.Fatalf("expected 1 standard calls, got %d", standardCalls)
		}
	})

	t.Run("other bases defer to standard", func(t *testing.T) {
		listRule := req
		listRule.Rule.Base = enums.PricelistBaseListPrice
		_, err := resolver.ComputePrice(listRule, standard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fixed := req
		fixed.Rule.ComputePrice = enums.ComputePriceFixed
		_, err = resolver.ComputePrice(fixed, standard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if standardCalls != 3 {
			t.Fatalf("expected 3 standard calls, got %d", standardCalls)
		}
	})

	t.Run("standard errors propagate", func(t *testing.T) {
		listRule := req
		listRule.Rule.Base = enums.PricelistBaseListPrice
		boom := errors.New("boom")
		_, err := resolver.ComputePrice(listRule, func(ComputeRequest) (decimal.Decimal, error) {
			return decimal.Zero, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})

	t.Run("converts to requested uom", func(t *testing.T) {
		perDozen := req
		perDozen.UomID = &dozenID
		price, err := resolver.ComputePrice(perDozen, standard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "59.4", price)
	})
}

func TestConvertToPriceUom(t *testing.T) {
	product := newTemplate(nil)
	converter := &stubConverter{}
	resolver := NewResolver(converter)

	t.Run("no uom keeps price", func(t *testing.T) {
		price, err := resolver.ConvertToPriceUom(product, dec("10"), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "10", price)
		if converter.calls != 0 {
			t.Fatalf("converter must not be called, got %d calls", converter.calls)
		}
	})

	t.Run("product uom keeps price", func(t *testing.T) {
		price, err := resolver.ConvertToPriceUom(product, dec("10"), &unitID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "10", price)
		if converter.calls != 0 {
			t.Fatalf("converter must not be called, got %d calls", converter.calls)
		}
	})

	t.Run("round trip recovers price", func(t *testing.T) {
		perDozen, err := resolver.ConvertToPriceUom(product, dec("100"), &dozenID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "1200", perDozen)

		dozenProduct := product
		dozenProduct.UomID = dozenID
		back, err := resolver.ConvertToPriceUom(dozenProduct, perDozen, &unitID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !back.Sub(dec("100")).Abs().LessThan(dec("0.000001")) {
			t.Fatalf("round trip drifted: %s", back)
		}
	})

	t.Run("incompatible category fails", func(t *testing.T) {
		_, err := resolver.ConvertToPriceUom(product, dec("100"), &kgID)
		if err == nil {
			t.Fatal("expected error")
		}
		if !pkgerrors.HasCode(err, pkgerrors.CodeUomIncompatible) {
			t.Fatalf("expected CodeUomIncompatible, got %v", err)
		}
	})

	t.Run("missing converter fails instead of guessing", func(t *testing.T) {
		_, err := NewResolver(nil).ConvertToPriceUom(product, dec("100"), &dozenID)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
