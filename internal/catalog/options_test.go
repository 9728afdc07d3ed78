// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/pkg/optional"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

var fixedNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

/*
TestDerivePlayOptions computes distinct sorted values and observed ranges.
*/
func TestDerivePlayOptions(t *testing.T) {
	plays := []catalog.Play{
		{ID: 1, Genre: pointer.To("Драма"), Theme: pointer.To("Любов"), Year: pointer.To(1980), MaleParticipants: pointer.To(4), FemaleParticipants: pointer.To(2)},
		{ID: 2, Genre: pointer.To("Комедия"), Theme: pointer.To("Семейство"), Year: pointer.To(1950), MaleParticipants: pointer.To(1)},
		{ID: 3, Genre: pointer.To("Драма"), Theme: pointer.To(" "), Year: pointer.To(2000), FemaleParticipants: pointer.To(6)},
		{ID: 4},
	}

	options := catalog.DerivePlayOptions(plays, fixedNow)

	assert.Equal(t, []string{"Драма", "Комедия"}, options.Genres)
	assert.Equal(t, []string{"Любов", "Семейство"}, options.Themes)
	assert.Equal(t, catalog.Range{Min: 1950, Max: 2000}, options.Years)
	assert.Equal(t, catalog.Range{Min: 1, Max: 4}, options.Male)
	assert.Equal(t, catalog.Range{Min: 2, Max: 6}, options.Female)
}

/*
TestDerivePlayOptions_EmptyDataset falls back to the fixed default ranges.
*/
func TestDerivePlayOptions_EmptyDataset(t *testing.T) {
	options := catalog.DerivePlayOptions(nil, fixedNow)

	assert.Empty(t, options.Genres)
	assert.Empty(t, options.Themes)
	assert.Equal(t, catalog.Range{Min: 1900, Max: 2026}, options.Years)
	assert.Equal(t, catalog.Range{Min: 0, Max: 20}, options.Male)
	assert.Equal(t, catalog.Range{Min: 0, Max: 20}, options.Female)
}

/*
TestDerivePlayOptions_BuilderIntegration checks that bounds picked at the edge
of the derived range vanish from the query.
*/
func TestDerivePlayOptions_BuilderIntegration(t *testing.T) {
	plays := []catalog.Play{
		{MaleParticipants: pointer.To(2)},
		{MaleParticipants: pointer.To(9)},
	}
	options := catalog.DerivePlayOptions(plays, fixedNow)

	criteria := catalog.PlayCriteria{MaleMax: optional.Of(9)}
	assert.Empty(t, criteria.Query(&options))

	criteria.MaleMax = optional.Of(5)
	assert.Equal(t, "male_participants_max=5", criteria.Query(&options).Encode())
}

/*
TestRange_Clamp keeps values inside the range.
*/
func TestRange_Clamp(t *testing.T) {
	r := catalog.Range{Min: 0, Max: 8}
	assert.Equal(t, 0, r.Clamp(-3))
	assert.Equal(t, 8, r.Clamp(12))
	assert.Equal(t, 5, r.Clamp(5))
	assert.Equal(t, 8, r.Clamp(8))
}

/*
TestTimestamp_Unmarshal accepts the naive datetimes emitted by the backend.
*/
func TestTimestamp_Unmarshal(t *testing.T) {
	var author catalog.Author
	payload := `{"id":3,"name_bg":"Йордан Йовков","name_en":null,"biography_bg":"Текст","biography_en":null,
		"photo_url":null,"created_at":"2024-05-01T10:20:30.123456","updated_at":"2024-05-02T08:00:00Z"}`

	require.NoError(t, json.Unmarshal([]byte(payload), &author))
	assert.Equal(t, 3, author.ID)
	assert.Equal(t, 2024, author.CreatedAt.Year())
	assert.Equal(t, 2, author.UpdatedAt.Day())
	assert.Nil(t, author.NameEN)

	var broken catalog.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &broken))
}
