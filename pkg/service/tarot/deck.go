package tarot

// Card is one major arcana card. The deck is static application data; only
// the card ID and orientation of a drawn card are ever persisted.
type Card struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Upright  string `json:"upright"`
	Reversed string `json:"reversed"`
}

// majorArcana is the full 22-card major arcana deck
var majorArcana = []Card{
	{ID: 0, Name: "The Fool", Upright: "new beginnings, spontaneity, a leap of faith", Reversed: "recklessness, hesitation, fear of the unknown"},
	{ID: 1, Name: "The Magician", Upright: "willpower, resourcefulness, manifestation", Reversed: "manipulation, untapped talent, scattered energy"},
	{ID: 2, Name: "The High Priestess", Upright: "intuition, inner wisdom, the subconscious", Reversed: "ignored intuition, secrets, surface knowledge"},
	{ID: 3, Name: "The Empress", Upright: "nurturing, abundance, creativity", Reversed: "dependence, creative block, smothering"},
	{ID: 4, Name: "The Emperor", Upright: "structure, authority, stability", Reversed: "rigidity, domination, lack of discipline"},
	{ID: 5, Name: "The Hierophant", Upright: "tradition, guidance, shared values", Reversed: "rebellion, unconventional paths, restriction"},
	{ID: 6, Name: "The Lovers", Upright: "love, harmony, aligned choices", Reversed: "disharmony, imbalance, difficult decisions"},
	{ID: 7, Name: "The Chariot", Upright: "determination, control, victory", Reversed: "lack of direction, opposition, giving up"},
	{ID: 8, Name: "Strength", Upright: "courage, patience, gentle power", Reversed: "self-doubt, weakness, raw emotion"},
	{ID: 9, Name: "The Hermit", Upright: "introspection, solitude, inner guidance", Reversed: "isolation, loneliness, withdrawal"},
	{ID: 10, Name: "Wheel of Fortune", Upright: "cycles, turning points, good luck", Reversed: "setbacks, resistance to change, bad luck"},
	{ID: 11, Name: "Justice", Upright: "fairness, truth, accountability", Reversed: "unfairness, dishonesty, avoiding responsibility"},
	{ID: 12, Name: "The Hanged Man", Upright: "surrender, new perspective, pause", Reversed: "stalling, needless sacrifice, indecision"},
	{ID: 13, Name: "Death", Upright: "endings, transformation, transition", Reversed: "resistance to change, stagnation, holding on"},
	{ID: 14, Name: "Temperance", Upright: "balance, moderation, patience", Reversed: "excess, imbalance, impatience"},
	{ID: 15, Name: "The Devil", Upright: "attachment, temptation, restriction", Reversed: "release, breaking free, reclaimed power"},
	{ID: 16, Name: "The Tower", Upright: "sudden upheaval, revelation, awakening", Reversed: "averted disaster, fear of change, delayed collapse"},
	{ID: 17, Name: "The Star", Upright: "hope, renewal, inspiration", Reversed: "discouragement, faithlessness, disconnection"},
	{ID: 18, Name: "The Moon", Upright: "intuition, illusion, the unknown", Reversed: "clarity, released fear, confusion lifting"},
	{ID: 19, Name: "The Sun", Upright: "joy, success, vitality", Reversed: "temporary gloom, dimmed optimism, delays"},
	{ID: 20, Name: "Judgement", Upright: "rebirth, self-evaluation, calling", Reversed: "self-doubt, harsh judgment, ignoring the call"},
	{ID: 21, Name: "The World", Upright: "completion, accomplishment, wholeness", Reversed: "incompletion, loose ends, delayed success"},
}

// DeckSize is the number of cards available for drawing. The deck data
// above must stay in sync with it.
const DeckSize = 22

var cardsByID = func() map[int]Card {
	m := make(map[int]Card, len(majorArcana))
	for _, c := range majorArcana {
		m[c.ID] = c
	}
	return m
}()

// Deck returns a copy of the full deck
func Deck() []Card {
	deck := make([]Card, len(majorArcana))
	copy(deck, majorArcana)
	return deck
}

// CardByID looks up a card by its ID
func CardByID(id int) (Card, bool) {
	c, ok := cardsByID[id]
	return c, ok
}
