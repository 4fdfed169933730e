package router

import (
	"context"
	"errors"
	"testing"
)

func TestAddRejectsDuplicate(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Add("/dup", nopHandler); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("/dup", nopHandler); !errors.Is(err, ErrRouteExists) {
		t.Errorf("second Add: err = %v, want ErrRouteExists", err)
	}
	if got := len(r.Routes()); got != 1 {
		t.Errorf("len(Routes()) = %d, want 1", got)
	}
}

func TestRemove(t *testing.T) {
	r, err := New(WithRoute("/a", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	if !r.Remove("/a") {
		t.Error("Remove of existing route should report true")
	}
	if r.Remove("/a") {
		t.Error("Remove of missing route should report false")
	}
	if _, ok := r.Match("/a"); ok {
		t.Error("removed route should not match")
	}
}

func TestUpdate(t *testing.T) {
	var which string
	first := func(ctx context.Context, params Params) error {
		which = "first"
		return nil
	}
	second := func(ctx context.Context, params Params) error {
		which = "second"
		return nil
	}

	r, err := New(WithRoute("/a", first))
	if err != nil {
		t.Fatal(err)
	}

	// Prime the cache, then update: the replacement must be observable.
	r.Match("/a")
	if !r.Update("/a", second) {
		t.Fatal("Update of existing route should report true")
	}
	if r.Update("/missing", second) {
		t.Error("Update must not insert missing patterns")
	}
	if _, ok := r.Match("/missing"); ok {
		t.Error("Update must not have registered /missing")
	}

	r.Navigate(context.Background(), "/a")
	if which != "second" {
		t.Errorf("dispatched handler = %q, want %q", which, "second")
	}
}

func TestRoutesOrder(t *testing.T) {
	r, err := New(
		WithRoute("/one", nopHandler),
		WithRoute("/two", nopHandler),
		WithRoute("/three", nopHandler),
	)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"/one", "/two", "/three"}
	got := r.Routes()
	if len(got) != len(want) {
		t.Fatalf("len(Routes()) = %d, want %d", len(got), len(want))
	}
	for i, rt := range got {
		if rt.Pattern != want[i] {
			t.Errorf("Routes()[%d] = %q, want %q", i, rt.Pattern, want[i])
		}
	}
}

func TestAddInvalidPattern(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Add("no-slash", nopHandler); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("err = %v, want ErrInvalidPattern", err)
	}
	// Sanitization strips trailing slashes, so such a pattern could never
	// match a navigable path.
	if err := r.Add("/blog/", nopHandler); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("err = %v, want ErrInvalidPattern for trailing slash", err)
	}
	if err := r.Add("/x/:id/:id", nopHandler); !errors.Is(err, ErrDuplicateParam) {
		t.Errorf("err = %v, want ErrDuplicateParam", err)
	}
}

func TestAddRedirectRejectsDuplicate(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if err := r.AddRedirect("/old", "/new"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddRedirect("/old", "/other"); !errors.Is(err, ErrRedirectExists) {
		t.Errorf("err = %v, want ErrRedirectExists", err)
	}
	// The original mapping must survive the rejected overwrite.
	if got := r.redirects["/old"]; got != "/new" {
		t.Errorf(`redirects["/old"] = %q, want %q`, got, "/new")
	}

	if !r.RemoveRedirect("/old") {
		t.Error("RemoveRedirect of existing source should report true")
	}
	if r.RemoveRedirect("/old") {
		t.Error("RemoveRedirect of missing source should report false")
	}
}

func TestNewRejectsBadInitialRoute(t *testing.T) {
	if _, err := New(WithRoute("bad", nopHandler)); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("err = %v, want ErrInvalidPattern", err)
	}
	if _, err := New(
		WithRoute("/a", nopHandler),
		WithRoute("/a", nopHandler),
	); !errors.Is(err, ErrRouteExists) {
		t.Errorf("err = %v, want ErrRouteExists", err)
	}
}

func TestBasePathStripped(t *testing.T) {
	r, err := New(
		WithBasePath("/app"),
		WithRoute("/users", nopHandler),
	)
	if err != nil {
		t.Fatal(err)
	}

	m, ok := r.Match("/app/users")
	if !ok {
		t.Fatal("expected match under base path")
	}
	if m.Pattern != "/users" {
		t.Errorf("Pattern = %q, want %q", m.Pattern, "/users")
	}

	// Paths outside the base are matched as-is.
	if _, ok := r.Match("/apple/users"); ok {
		t.Error("/apple/users should not match (prefix is not a segment)")
	}
}

func TestTestPathDiagnostic(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	res := r.TestPath("/page<script>")
	if res.Original != "/page<script>" {
		t.Errorf("Original = %q", res.Original)
	}
	if res.Path != "/pagescript" {
		t.Errorf("Path = %q, want %q", res.Path, "/pagescript")
	}
	if !res.Changed {
		t.Error("Changed should be true")
	}
	if res.Blocked {
		t.Error("Blocked should be false")
	}

	if res := r.TestPath("/wp-admin"); !res.Blocked {
		t.Error("expected /wp-admin to be blocked")
	}
}
