package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/imvikashdev/storefront/internal/catalog"
	"github.com/imvikashdev/storefront/internal/domain"
	"github.com/imvikashdev/storefront/internal/session"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pages lists the per-page templates; each is parsed together with the
// shared layout so {{template "content" .}} resolves per page.
var pages = []string{"index", "cart", "checkout", "order", "admin", "error"}

var printer = message.NewPrinter(language.English)

// money renders a float amount as a US dollar string with digit grouping,
// e.g. $1,299.48.
func money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// moneyString renders a decimal price string from the commerce API.
func moneyString(s string) string {
	return money(domain.ParsePrice(s))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

var templateFuncs = template.FuncMap{
	"money":       money,
	"moneyString": moneyString,
	"formatDate":  formatDate,
	"lineTotal": func(item domain.CartLineItem) string {
		return money(item.LineTotal())
	},
}

// View renders the storefront pages from embedded templates.
type View struct {
	templates map[string]*template.Template
}

// NewView parses all embedded templates. Parse failures are programmer
// errors and abort startup.
func NewView() (*View, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.gohtml").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.gohtml", "templates/"+page+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &View{templates: templates}, nil
}

// pageData is the root object every template renders against.
type pageData struct {
	Title         string
	UserID        string
	ItemCount     int
	Flash         []session.Flash
	CheckoutState session.CheckoutState

	// Page-specific payloads; only the relevant ones are set.
	Products       []catalog.Product
	Items          []domain.CartLineItem
	Subtotal       float64
	Order          *domain.Order
	Stats          *domain.AdminStats
	ActiveDiscount *domain.DiscountCode
	ErrorMessage   string
}

// Render writes the named page. The session supplies the header state
// (user, cart badge) and one-shot flash messages.
func (v *View) Render(w io.Writer, page string, sess *session.Session, data pageData) error {
	t, ok := v.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	data.UserID = sess.UserID
	data.ItemCount = sess.ItemCount()
	data.CheckoutState = sess.CheckoutState
	if data.Flash == nil {
		data.Flash = sess.PopFlash()
	}

	return t.ExecuteTemplate(w, "layout.gohtml", data)
}
