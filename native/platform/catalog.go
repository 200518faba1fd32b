package platform

import "strings"

// PublishContent registers a new catalog entry for an approved creator.
// Identifiers are assigned from a pre-incremented counter, so they start at 1
// and are never reused.
func (e *Engine) PublishContent(creator [20]byte, title string, uri string, tier uint8) (*Content, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	approved, err := e.state.CreatorApproved(creator)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, ErrNotApprovedCreator
	}
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, ErrEmptyTitle
	}
	trimmedURI := strings.TrimSpace(uri)
	if trimmedURI == "" {
		return nil, ErrEmptyURI
	}
	if !ValidTier(tier) {
		return nil, ErrInvalidTier
	}
	counter, err := e.state.ContentCounter()
	if err != nil {
		return nil, err
	}
	id := counter + 1
	content := &Content{
		ID:        id,
		Title:     trimmedTitle,
		URI:       trimmedURI,
		Creator:   creator,
		Tier:      tier,
		CreatedAt: e.now(),
		Active:    true,
	}
	if err := e.state.SetContentCounter(id); err != nil {
		return nil, err
	}
	if err := e.state.ContentPut(content); err != nil {
		return nil, err
	}
	if err := e.state.CreatorContentAppend(creator, id); err != nil {
		return nil, err
	}
	e.emit(contentPublishedEvent(id, hexAddr(creator), trimmedTitle, tier))
	return content.Clone(), nil
}

// DeactivateContent takes a catalog entry down. Only the owning creator or the
// administrator may do so. There is no reactivation path; deactivation is
// terminal.
func (e *Engine) DeactivateContent(caller [20]byte, id uint64) (*Content, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	content, err := e.contentInRange(id)
	if err != nil {
		return nil, err
	}
	if caller != content.Creator {
		admin, err := e.isAdmin(caller)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, ErrUnauthorized
		}
	}
	content.Active = false
	if err := e.state.ContentPut(content); err != nil {
		return nil, err
	}
	e.emit(contentDeactivatedEvent(id, hexAddr(caller)))
	return content.Clone(), nil
}

// ContentDetails returns the catalog entry for the supplied identifier. The
// locator is intentionally cleared: it is only released through AccessContent.
func (e *Engine) ContentDetails(id uint64) (*Content, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	content, err := e.contentInRange(id)
	if err != nil {
		return nil, err
	}
	details := content.Clone()
	details.URI = ""
	return details, nil
}

// CreatorContent lists the catalog entries published by the supplied creator,
// locators cleared, in publication order.
func (e *Engine) CreatorContent(creator [20]byte) ([]*Content, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	ids, err := e.state.CreatorContentList(creator)
	if err != nil {
		return nil, err
	}
	out := make([]*Content, 0, len(ids))
	for _, id := range ids {
		content, ok, err := e.state.ContentGet(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		details := content.Clone()
		details.URI = ""
		out = append(out, details)
	}
	return out, nil
}

// contentInRange validates the identifier against the monotonic counter before
// looking the record up. Callers must hold the engine mutex.
func (e *Engine) contentInRange(id uint64) (*Content, error) {
	counter, err := e.state.ContentCounter()
	if err != nil {
		return nil, err
	}
	if id == 0 || id > counter {
		return nil, ErrInvalidContentID
	}
	content, ok, err := e.state.ContentGet(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidContentID
	}
	return content, nil
}
