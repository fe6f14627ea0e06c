package services

import "github.com/SscSPs/school_ledger/internal/core/posting"

// PostingEvent is a domain event understood by the posting engine.
type PostingEvent = posting.Event
