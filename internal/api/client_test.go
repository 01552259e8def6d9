package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestSignIn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/signin", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice@example.com", req["email"])
			assert.Equal(t, "secret", req["password"])

			json.NewEncoder(w).Encode(map[string]string{
				"token":  "tok-123",
				"userId": "user-1",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		creds, err := client.SignIn(context.Background(), "alice@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok-123", creds.Token)
		assert.Equal(t, "user-1", creds.UserID)
	})

	t.Run("RejectedCarriesServerMessage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		creds, err := client.SignIn(context.Background(), "alice@example.com", "wrong")
		assert.Nil(t, creds)
		require.True(t, IsAuthRejected(err))
		assert.Equal(t, "Invalid credentials", UserMessage(err, "fallback"))
	})

	t.Run("MissingTokenIsDecodeError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"userId": "user-1"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		_, err := client.SignIn(context.Background(), "alice@example.com", "secret")
		assert.True(t, IsDecodeError(err))
	})

	t.Run("ServerDown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		_, err := client.SignIn(context.Background(), "alice@example.com", "secret")
		assert.True(t, IsNetworkError(err))
	})
}

func TestSignUp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/signup", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Alice", req["name"])

			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		err := client.SignUp(context.Background(), "Alice", "alice@example.com", "secret")
		assert.NoError(t, err)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email already exists"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		err := client.SignUp(context.Background(), "Alice", "alice@example.com", "secret")
		require.True(t, IsAuthRejected(err))
		assert.Equal(t, "Email already exists", UserMessage(err, "fallback"))
	})
}

func TestListUsers(t *testing.T) {
	t.Run("SendsBearerToken", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]map[string]string{
				{"_id": "u1", "name": "Alice"},
				{"_id": "u2", "name": "Bob"},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		users, err := client.ListUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "u1", users[0].ID)
		assert.Equal(t, "Alice", users[0].Name)
	})

	t.Run("NonArrayPayloadDegradesToEmpty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "nothing here"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		users, err := client.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("NoTokenFailsBeforeNetwork", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken(""), 0)
		_, err := client.ListUsers(context.Background())
		assert.True(t, IsAuthRequired(err))
		assert.False(t, called)
	})
}

func TestListMail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/mail", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"_id":     "m1",
					"sender":  map[string]string{"name": "Alice"},
					"subject": "Hello",
					"content": "Hi there",
				},
				{
					"_id":     "m2",
					"subject": "Orphaned",
					"content": "sender account deleted",
				},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		mails, err := client.ListMail(context.Background())
		require.NoError(t, err)
		require.Len(t, mails, 2)
		assert.Equal(t, "Alice", mails[0].Sender.Name)
		assert.Nil(t, mails[1].Sender)
	})

	t.Run("MalformedPayloadIsDecodeError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"oops": true}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		_, err := client.ListMail(context.Background())
		assert.True(t, IsDecodeError(err))
	})

	t.Run("ServerErrorCarriesMessage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "mailbox unavailable"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		_, err := client.ListMail(context.Background())
		require.Error(t, err)
		assert.Equal(t, "mailbox unavailable", UserMessage(err, "fallback"))
	})
}

func TestSendMail(t *testing.T) {
	t.Run("BodyShape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/mail/send", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "user-1", req["senderId"])
			assert.Equal(t, "u2", req["recipient"])
			assert.Equal(t, "Hello", req["subject"])
			assert.Equal(t, "Hi there", req["content"])
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		err := client.SendMail(context.Background(), OutgoingMail{
			SenderID:  "user-1",
			Recipient: "u2",
			Subject:   "Hello",
			Content:   "Hi there",
		})
		assert.NoError(t, err)
	})

	t.Run("RejectedSendSurfacesError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Recipient not found"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticToken("tok-123"), 0)
		err := client.SendMail(context.Background(), OutgoingMail{
			SenderID:  "user-1",
			Recipient: "ghost",
			Subject:   "Hello",
			Content:   "Hi",
		})
		require.Error(t, err)
		assert.Equal(t, "Recipient not found", UserMessage(err, "fallback"))
	})
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "fallback", UserMessage(&NetworkError{Err: context.DeadlineExceeded}, "fallback"))
	assert.Equal(t, "Subject is required", UserMessage(&ValidationError{Field: "Subject"}, "fallback"))
	assert.Equal(t, "You must be logged in to do that.", UserMessage(&AuthRequired{}, "fallback"))
}
