package posting

import (
	"strings"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// legacyPrefixes map invoice number prefixes of records saved before document types
// were stored. Longest prefixes first.
var legacyPrefixes = []struct {
	prefix  string
	docType domain.DocumentType
}{
	{"TILL-", domain.TillSale},
	{"EST-", domain.Estimate},
	{"QUO-", domain.Quotation},
	{"INV-", domain.Invoice},
	{"SO-", domain.SalesOrder},
}

// ResolveDocumentType returns the stored type when it is valid. Otherwise it infers the type
// from the invoice number prefix and defaults to an invoice.
func ResolveDocumentType(stored domain.DocumentType, invoiceNumber string) domain.DocumentType {
	if stored.IsValid() {
		return stored
	}
	number := strings.ToUpper(strings.TrimSpace(invoiceNumber))
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(number, p.prefix) {
			return p.docType
		}
	}
	return domain.Invoice
}

// PostsToLedger reports whether a document of this type affects the ledger.
func PostsToLedger(docType domain.DocumentType) bool {
	return docType.PostsToLedger()
}
