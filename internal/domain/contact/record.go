package contact

// Record is the persisted shape of one contact. The JSON tags define the
// blob-store document format: { "<name>": {name,address,phones,email,birthday|null} }.
type Record struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phones   []string `json:"phones"`
	Email    string   `json:"email"`
	Birthday *string  `json:"birthday"`
}

func (c *Contact) Record() Record {
	r := Record{
		Name:    c.Name,
		Address: c.Address,
		Phones:  append([]string(nil), c.Phones...),
		Email:   c.Email,
	}
	if r.Phones == nil {
		r.Phones = []string{}
	}
	if c.Birthday != "" {
		b := c.Birthday
		r.Birthday = &b
	}
	return r
}

// FromRecord decodes a stored record, tolerating missing fields: absent
// address/email decode to empty strings, absent phones to an empty list,
// absent birthday to not set. Round-tripping through Record is lossless
// modulo whitespace trimming, which is idempotent.
func FromRecord(r Record) *Contact {
	birthday := ""
	if r.Birthday != nil {
		birthday = *r.Birthday
	}
	return New(r.Name, r.Address, r.Phones, r.Email, birthday)
}
