package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin wrapper around the Supabase REST (PostgREST) and auth APIs.
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client authenticated with a service key.
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// User represents an authenticated Supabase user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// do builds and executes a PostgREST request against table. The query map
// becomes URL parameters, body (if non-nil) is JSON-encoded, and prefer is
// sent as the Prefer header. When userToken is set it is used as the bearer
// token so row level security applies; otherwise the service key is used.
func (c *Client) do(method, table string, query map[string]interface{}, body interface{}, prefer, userToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for key, value := range query {
			q.Add(key, fmt.Sprintf("%v", value))
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.ServiceKey)
	if userToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", userToken))
	} else {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(respBody))
	}

	return respBody, nil
}

// Query executes a filtered select on a table.
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	return c.QueryWithToken(table, query, "")
}

// QueryWithToken executes a filtered select with an optional user JWT for RLS.
func (c *Client) QueryWithToken(table string, query map[string]interface{}, userToken string) ([]byte, error) {
	return c.do(http.MethodGet, table, query, nil, "", userToken)
}

// Insert inserts a record into a table.
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.InsertWithToken(table, data, "")
}

// InsertWithToken inserts a record with an optional user JWT for RLS.
func (c *Client) InsertWithToken(table string, data interface{}, userToken string) ([]byte, error) {
	return c.do(http.MethodPost, table, nil, data, "return=representation", userToken)
}

// Update updates the record with the given id.
func (c *Client) Update(table string, id string, data interface{}) ([]byte, error) {
	return c.UpdateWithToken(table, id, data, "")
}

// UpdateWithToken updates the record with the given id, with an optional user JWT.
func (c *Client) UpdateWithToken(table string, id string, data interface{}, userToken string) ([]byte, error) {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	return c.do(http.MethodPatch, table, query, data, "return=representation", userToken)
}

// UpdateWhere updates all records matching a query.
func (c *Client) UpdateWhere(table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	return c.UpdateWhereWithToken(table, query, data, "")
}

// UpdateWhereWithToken updates matching records with an optional user JWT.
func (c *Client) UpdateWhereWithToken(table string, query map[string]interface{}, data interface{}, userToken string) ([]byte, error) {
	return c.do(http.MethodPatch, table, query, data, "return=representation", userToken)
}

// Upsert inserts a record, updating the existing row when the columns named
// in onConflict collide (e.g. "user_id,pattern_type,name").
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	return c.UpsertWithToken(table, data, onConflict, "")
}

// UpsertWithToken upserts with an optional user JWT for RLS.
func (c *Client) UpsertWithToken(table string, data interface{}, onConflict string, userToken string) ([]byte, error) {
	query := map[string]interface{}{"on_conflict": onConflict}
	// merge-duplicates makes PostgREST update conflicting rows instead of failing
	return c.do(http.MethodPost, table, query, data, "return=representation,resolution=merge-duplicates", userToken)
}

// Delete deletes the record with the given id.
func (c *Client) Delete(table string, id string) error {
	return c.DeleteWithToken(table, id, "")
}

// DeleteWithToken deletes the record with the given id, with an optional user JWT.
func (c *Client) DeleteWithToken(table string, id string, userToken string) error {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	_, err := c.do(http.MethodDelete, table, query, nil, "", userToken)
	return err
}

// DeleteWhere deletes all records matching a query.
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	return c.DeleteWhereWithToken(table, query, "")
}

// DeleteWhereWithToken deletes matching records with an optional user JWT.
func (c *Client) DeleteWhereWithToken(table string, query map[string]interface{}, userToken string) error {
	_, err := c.do(http.MethodDelete, table, query, nil, "", userToken)
	return err
}

// VerifyToken verifies a user JWT against the Supabase auth endpoint and
// returns the associated user.
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
