package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationEndpoint(t *testing.T) {
	r, db, auth := setupTest(t)
	_, ngoToken := seedUser(t, db, auth, "ngo", "ngo@example.com")

	// NGO accounts alone do not make the data sufficient.
	w := doRequest(t, r, http.MethodGet, "/api/evaluation", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["data_sufficient"])
	assert.Len(t, body["models"], 3)

	_, donorToken := seedUser(t, db, auth, "donor", "donor@example.com")
	createListing(t, r, donorToken, "Curry", 40)

	w = doRequest(t, r, http.MethodGet, "/api/evaluation", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["data_sufficient"])
	assert.NotEmpty(t, body["recommended"])
}
