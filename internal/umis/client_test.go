package umis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop()), srv
}

func TestQuarterID(t *testing.T) {
	assert.Equal(t, "2025/2026.1", QuarterID("2025/2026", "First Semester"))
	assert.Equal(t, "2025/2026.2", QuarterID("2025/2026", "Second Semester"))
	assert.Equal(t, "2025/2026.3", QuarterID("2025/2026", "Summer Semester"))
}

func TestAuthenticateSendsEncodedCredentials(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "authorization", r.Header.Get("action"))
		user, _ := base64.StdEncoding.DecodeString(r.Header.Get("authuser"))
		pass, _ := base64.StdEncoding.DecodeString(r.Header.Get("authpass"))
		assert.Equal(t, "hod001", string(user))
		assert.Equal(t, "secret", string(pass))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": 0,
			"data": []map[string]string{{
				"token": "tok-1", "umisid": "hod001", "name": "Dr. Ada",
				"role": "headofdepartment", "deptname": "Computer Science",
			}},
		})
	})
	defer srv.Close()

	auth, err := client.Authenticate(context.Background(), "hod001", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", auth.Token)
	assert.Equal(t, "headofdepartment", auth.Role)
	assert.Equal(t, "Computer Science", auth.Department)
}

func TestAuthenticateDecodesBareObjectPayload(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": 0,
			"data":   map[string]string{"token": "tok-2", "umisid": "hod001"},
		})
	})
	defer srv.Close()

	auth, err := client.Authenticate(context.Background(), "hod001", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", auth.Token)
}

func TestAuthenticateRejection(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": 1, "message": "bad credentials"})
	})
	defer srv.Close()

	_, err := client.Authenticate(context.Background(), "hod001", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestInstructorLookup(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "read", r.Header.Get("action"))
		assert.Equal(t, "tok-1", r.Header.Get("authorization"))
		assert.Equal(t, "70:0", r.URL.Query().Get("view"))
		assert.Equal(t, "hod001", r.URL.Query().Get("linkdata"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": 0,
			"data":   []map[string]string{{"umisid": "hod001", "name": "Dr. Ada", "email": "ada@example.edu"}},
		})
	})
	defer srv.Close()

	instructor, err := client.Instructor(context.Background(), "tok-1", "hod001")
	require.NoError(t, err)
	require.NotNil(t, instructor)
	assert.Equal(t, "ada@example.edu", instructor.Email)
}

func TestInstructorAbsent(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": 0, "data": []map[string]string{}})
	})
	defer srv.Close()

	instructor, err := client.Instructor(context.Background(), "tok-1", "nobody")
	require.NoError(t, err)
	assert.Nil(t, instructor)
}

func TestPushWritesPayload(t *testing.T) {
	var got PushPayload
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "write", r.Header.Get("action"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"result": 0})
	})
	defer srv.Close()

	err := client.Push(context.Background(), "tok-1", PushPayload{
		QuarterID:    "2025/2026.1",
		InstructorID: "STF-A1",
		CourseID:     "COSC 111",
		CourseTitle:  "Intro to Programming",
		ClassOption:  "Regular",
		MaxClass:     80,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025/2026.1", got.QuarterID)
	assert.Equal(t, "STF-A1", got.InstructorID)
}

func TestPushRowRejection(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": 2, "message": "duplicate row"})
	})
	defer srv.Close()

	err := client.Push(context.Background(), "tok-1", PushPayload{})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestNon2xxIsRejection(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.ClassOptions(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestUnreachableDataserver(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Authenticate(context.Background(), "hod001", "secret")
	assert.ErrorIs(t, err, ErrUnavailable)
}
