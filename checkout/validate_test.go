package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

type fakePartReader struct {
	parts []models.Part
	err   error
	calls int
}

func (f *fakePartReader) PartsByIDs(ids []int) ([]models.Part, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var matched []models.Part
	for _, part := range f.parts {
		for _, id := range ids {
			if int(part.ID) == id {
				matched = append(matched, part)
			}
		}
	}
	return matched, nil
}

func intPtr(v int) *int { return &v }

func catalogPart(id uint, name string, price float64, stock *int) models.Part {
	return models.Part{
		Model: gorm.Model{ID: id},
		Name:  name,
		Price: price,
		Stock: stock,
		Images: []models.PartImage{
			{Url: "https://cdn.example.com/" + name + ".jpg"},
		},
	}
}

func TestValidateCartEmpty(t *testing.T) {
	reader := &fakePartReader{}

	_, err := ValidateCart(reader, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, reader.calls, "no catalog read before structural checks pass")
}

func TestValidateCartTooManyLines(t *testing.T) {
	lines := make([]CartLine, MaxCartLines+1)
	for i := range lines {
		lines[i] = CartLine{PartID: i + 1, Quantity: 1}
	}

	_, err := ValidateCart(&fakePartReader{}, lines)
	assert.ErrorIs(t, err, ErrTooManyLines)
}

func TestValidateCartQuantityBounds(t *testing.T) {
	for _, quantity := range []int{0, -1, MaxQuantity + 1} {
		_, err := ValidateCart(&fakePartReader{}, []CartLine{{PartID: 1, Quantity: quantity}})
		assert.ErrorIs(t, err, ErrBadQuantity, "quantity %d", quantity)
	}
}

func TestValidateCartDuplicateLines(t *testing.T) {
	lines := []CartLine{
		{PartID: 7, Quantity: 1},
		{PartID: 7, Quantity: 2},
	}

	_, err := ValidateCart(&fakePartReader{}, lines)
	assert.ErrorIs(t, err, ErrDuplicateLine)
}

func TestValidateCartPartNotFound(t *testing.T) {
	reader := &fakePartReader{
		parts: []models.Part{catalogPart(1, "pneu-10", 25.00, intPtr(10))},
	}
	lines := []CartLine{
		{PartID: 1, Quantity: 1},
		{PartID: 999, Quantity: 1},
	}

	_, err := ValidateCart(reader, lines)

	var notFound *PartNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 999, notFound.PartID)
}

func TestValidateCartInsufficientStock(t *testing.T) {
	reader := &fakePartReader{
		parts: []models.Part{catalogPart(1, "chambre-a-air", 8.50, intPtr(2))},
	}

	_, err := ValidateCart(reader, []CartLine{{PartID: 1, Quantity: 3}})

	var noStock *InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, 1, noStock.PartID)
	assert.Equal(t, 3, noStock.Requested)
	assert.Equal(t, 2, noStock.Available)
	assert.Equal(t, "chambre-a-air", noStock.Name)
}

func TestValidateCartNilStockIsUnlimited(t *testing.T) {
	reader := &fakePartReader{
		parts: []models.Part{catalogPart(1, "poignee", 5.00, nil)},
	}

	lines, err := ValidateCart(reader, []CartLine{{PartID: 1, Quantity: MaxQuantity}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Unlimited)
}

func TestValidateCartUsesAuthoritativePrice(t *testing.T) {
	// The request carries no price at all; the validated line must come
	// back with the catalog price and frozen name/image.
	reader := &fakePartReader{
		parts: []models.Part{catalogPart(42, "frein-a-disque", 17.90, intPtr(5))},
	}

	lines, err := ValidateCart(reader, []CartLine{{PartID: 42, Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, 17.90, lines[0].UnitPrice)
	assert.Equal(t, "frein-a-disque", lines[0].Name)
	assert.Equal(t, "https://cdn.example.com/frein-a-disque.jpg", lines[0].ImageUrl)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.False(t, lines[0].Unlimited)
}

func TestValidateCartPropagatesReaderError(t *testing.T) {
	readerErr := errors.New("connection refused")
	reader := &fakePartReader{err: readerErr}

	_, err := ValidateCart(reader, []CartLine{{PartID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, readerErr)
}

func TestValidateCartSingleBatchRead(t *testing.T) {
	reader := &fakePartReader{
		parts: []models.Part{
			catalogPart(1, "pneu", 25.00, intPtr(10)),
			catalogPart(2, "guidon", 32.00, intPtr(4)),
			catalogPart(3, "sonnette", 3.50, nil),
		},
	}
	lines := []CartLine{
		{PartID: 1, Quantity: 1},
		{PartID: 2, Quantity: 2},
		{PartID: 3, Quantity: 3},
	}

	validated, err := ValidateCart(reader, lines)
	require.NoError(t, err)
	assert.Len(t, validated, 3)
	assert.Equal(t, 1, reader.calls)
}
