package controllers_test

import (
	"net/http"
	"testing"

	"soulconnect/web/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBiodata(t *testing.T, r *gin.Engine, owner string, fields map[string]interface{}) int {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/biodatas", fields, authCookie(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	return int(decodeBody(t, w)["biodataId"].(float64))
}

func TestCreateBiodataAllocatesSequentialIDs(t *testing.T) {
	r, _ := newTestEnv(t)

	first := createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType": "Female", "name": "Alice",
	})
	second := createBiodata(t, r, "bob@example.com", map[string]interface{}{
		"biodataType": "Male", "name": "Bob",
	})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestCreateBiodataRejectsBadType(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodPost, "/biodatas",
		map[string]interface{}{"biodataType": "Other"}, authCookie(t, "alice@example.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnonymousFetchIsRedacted(t *testing.T) {
	r, _ := newTestEnv(t)

	id := createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType":  "Female",
		"name":         "Alice",
		"occupation":   "Doctor",
		"contactEmail": "alice.contact@example.com",
		"mobileNumber": "+880111111111",
	})

	w := doRequest(t, r, http.MethodGet, "/biodatas/biodata/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, id)

	body := decodeBody(t, w)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "Doctor", body["occupation"])
	assert.NotContains(t, body, "contactEmail")
	assert.NotContains(t, body, "mobileNumber")
}

func TestOwnerFetchIncludesContact(t *testing.T) {
	r, _ := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType":  "Female",
		"contactEmail": "alice.contact@example.com",
	})

	w := doRequest(t, r, http.MethodGet, "/biodatas/biodata/1", nil, authCookie(t, "alice@example.com"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice.contact@example.com", decodeBody(t, w)["contactEmail"])
}

// The premium role by itself unlocks nothing; entitlement is per
// biodata id.
func TestPremiumRoleAloneStaysRedacted(t *testing.T) {
	r, store := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType":  "Female",
		"contactEmail": "alice.contact@example.com",
	})
	require.NoError(t, store.DB.Create(&db.User{Email: "pat@example.com", Role: db.RolePremium}).Error)

	w := doRequest(t, r, http.MethodGet, "/biodatas/biodata/1", nil, authCookie(t, "pat@example.com"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decodeBody(t, w), "contactEmail")
}

func TestGetBiodataByIDNotFound(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodGet, "/biodatas/biodata/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBiodataByIDRejectsNonInteger(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodGet, "/biodatas/biodata/seven", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingsNeverLeakContactFields(t *testing.T) {
	r, _ := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType": "Female", "contactEmail": "a@example.com", "mobileNumber": "1",
	})
	createBiodata(t, r, "bob@example.com", map[string]interface{}{
		"biodataType": "Male", "contactEmail": "b@example.com", "mobileNumber": "2",
	})

	for _, path := range []string{"/biodatas", "/biodatas/similar/male", "/biodatas/similar/Female"} {
		w := doRequest(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		for _, item := range decodeList(t, w) {
			assert.NotContains(t, item, "contactEmail", path)
			assert.NotContains(t, item, "mobileNumber", path)
		}
	}
}

func TestSimilarBiodatasNormalizesGender(t *testing.T) {
	r, _ := newTestEnv(t)

	createBiodata(t, r, "bob@example.com", map[string]interface{}{"biodataType": "Male"})

	w := doRequest(t, r, http.MethodGet, "/biodatas/similar/mALe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestOwnerBiodatasForbiddenForOthers(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodGet, "/biodatas/alice@example.com", nil, authCookie(t, "bob@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnerBiodatasReturnsFullRecords(t *testing.T) {
	r, _ := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{
		"biodataType": "Female", "contactEmail": "a.contact@example.com",
	})

	w := doRequest(t, r, http.MethodGet, "/biodatas/alice@example.com", nil, authCookie(t, "alice@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "a.contact@example.com", list[0]["contactEmail"])
}

func TestUpdateBiodataOwnerOnly(t *testing.T) {
	r, _ := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{"biodataType": "Female", "name": "Alice"})

	w := doRequest(t, r, http.MethodPatch, "/biodatas/biodata/1",
		map[string]interface{}{"name": "Intruder"}, authCookie(t, "bob@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPatch, "/biodatas/biodata/1",
		map[string]interface{}{"name": "Alice Updated"}, authCookie(t, "alice@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/biodatas/biodata/1", nil)
	assert.Equal(t, "Alice Updated", decodeBody(t, w)["name"])
}

func TestUpdateBiodataNotFound(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodPatch, "/biodatas/biodata/5",
		map[string]interface{}{"name": "X"}, authCookie(t, "alice@example.com"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBiodataCounts(t *testing.T) {
	r, store := newTestEnv(t)

	createBiodata(t, r, "alice@example.com", map[string]interface{}{"biodataType": "Female"})
	createBiodata(t, r, "bob@example.com", map[string]interface{}{"biodataType": "Male"})
	require.NoError(t, store.DB.Create(&db.SuccessStory{MarriageDate: "2024-01-01"}).Error)

	w := doRequest(t, r, http.MethodGet, "/biodata/counts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["totalCount"])
	assert.EqualValues(t, 1, body["maleCount"])
	assert.EqualValues(t, 1, body["femaleCount"])
	assert.EqualValues(t, 0, body["premiumCount"])
	assert.EqualValues(t, 1, body["totalMarriageCount"])
}

func TestCounterEndpoints(t *testing.T) {
	r, store := newTestEnv(t)
	admin := seedAdmin(t, store)

	w := doRequest(t, r, http.MethodGet, "/biodataIdCounters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["lastIssued"])

	w = doRequest(t, r, http.MethodPatch, "/biodataIdCounters",
		map[string]interface{}{"lastIssued": 50}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	id := createBiodata(t, r, "alice@example.com", map[string]interface{}{"biodataType": "Female"})
	assert.Equal(t, 51, id)
}
