// Package names generates the demo token identities the development backend
// seeds its store with, delivering memorable identifiers that make local
// dashboards and CLI output readable.
//
// Token IDs come out in "adjective-noun" format, drawing from themed
// vocabularies that mirror the kind of tokens the dashboard actually lists:
// animal mascots, meme culture, and market slang. The lowercase hyphenated
// form passes token ID validation directly, so generated IDs flow through
// cache keys and URL paths without translation.
//
// VOCABULARY SOURCES:
//   - General Descriptive: Docker-inspired adjectives for familiar naming
//   - Meme/Degen: community slang for tokens that look the part
//   - Market: trading-floor vocabulary for the finance flavor
//   - Animals: the mascot tradition most meme tokens follow
//   - Crypto: coins, chains, and wallet furniture
//
// DETERMINISTIC SEEDING:
// The development backend needs the same tokens across restarts so cached
// reads, bookmarks, and test fixtures stay valid. NewSeeded returns a
// generator over a seeded source producing an identical sequence for an
// identical seed; the package-level Generate uses crypto/rand for one-off
// unpredictable names.
//
// Derived forms: DisplayName turns an ID into a title-cased label and
// Symbol derives the ticker shown next to prices.
//
// Examples: "bullish-doge" (BDOGE), "cosmic-pepe" (CPEPE), "liquid-otter"
// (LOTTE), "degen-hamster" (DHAMS)
package names

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"strings"
)

// Adjectives from multiple themes for token name generation
var adjectives = []string{
	// General/Docker-like adjectives
	"admiring", "adoring", "affectionate", "agitated", "amazing",
	"angry", "awesome", "beautiful", "blissful", "bold",
	"brave", "busy", "charming", "clever", "cool",
	"confident", "cranky", "crazy", "dazzling", "determined",
	"dreamy", "eager", "ecstatic", "elastic", "elated",
	"elegant", "eloquent", "exciting", "fervent", "festive",
	"flamboyant", "friendly", "frosty", "funny", "gallant",
	"gifted", "goofy", "gracious", "great", "happy",
	"hopeful", "hungry", "inspiring", "intelligent", "jolly",
	"jovial", "keen", "kind", "laughing", "loving",
	"lucid", "magical", "mystifying", "modest", "nifty",
	"nostalgic", "optimistic", "peaceful", "pensive", "quirky",
	"relaxed", "serene", "silly", "sleepy", "stoic",
	"strange", "sweet", "tender", "thirsty", "upbeat",
	"vibrant", "vigilant", "vigorous", "wizardly", "wonderful",
	"youthful", "zealous", "zen",

	// Meme/Degen adjectives
	"based", "bullish", "bearish", "degen", "diamond",
	"galactic", "giga", "hyper", "legendary", "lunar",
	"mega", "mooning", "pumping", "rare", "royal",
	"savage", "sigma", "smol", "sneaky", "spicy",
	"stonky", "turbo", "ultra", "viral", "wagmi",
	"wrapped", "yolo", "zoomer", "alpha", "ape",

	// Market adjectives
	"liquid", "volatile", "stable", "leveraged", "staked",
	"vested", "minted", "burned", "audited", "backed",
	"bridged", "compound", "decentralized", "deflationary", "fractional",
	"governed", "hedged", "indexed", "listed", "locked",
	"pegged", "pooled", "rebased", "slashed", "solvent",
	"synthetic", "tokenized", "trustless", "unbanked", "yielding",
}

// Nouns from multiple themes for token name generation
var nouns = []string{
	// Animals, the mascot tradition most meme tokens follow
	"albatross", "ant", "antelope", "ape", "armadillo",
	"badger", "bat", "bear", "bee", "beetle",
	"bison", "boar", "buffalo", "butterfly", "camel",
	"cat", "cheetah", "chicken", "chipmunk", "cobra",
	"corgi", "cow", "coyote", "crab", "crane",
	"crocodile", "crow", "deer", "dog", "dolphin",
	"donkey", "dove", "duck", "eagle", "elephant",
	"elk", "emu", "falcon", "ferret", "finch",
	"flamingo", "fox", "frog", "giraffe", "goat",
	"goose", "gorilla", "hamster", "hare", "hawk",
	"hedgehog", "heron", "hippo", "horse", "hyena",
	"iguana", "jackal", "jaguar", "kangaroo", "kitten",
	"koala", "lamb", "lemur", "leopard", "lion",
	"lizard", "llama", "lobster", "lynx", "magpie",
	"mammoth", "manatee", "meerkat", "mole", "mongoose",
	"monkey", "moose", "mouse", "narwhal", "octopus",
	"orca", "ostrich", "otter", "owl", "ox",
	"panda", "panther", "parrot", "pelican", "penguin",
	"pig", "porcupine", "quail", "rabbit", "raccoon",
	"ram", "raven", "rhino", "robin", "rooster",
	"seal", "shark", "sheep", "sloth", "snail",
	"sparrow", "squid", "squirrel", "stork", "swan",
	"tiger", "toad", "trout", "turkey", "turtle",
	"walrus", "weasel", "whale", "wolf", "wombat",
	"woodpecker", "yak", "zebra",

	// Meme culture
	"doge", "pepe", "inu", "shiba", "floki",
	"wojak", "chad", "giga", "moon", "rocket",
	"lambo", "hodl", "fomo", "stonks", "tendies",
	"banana", "burger", "pickle", "potato", "taco",
	"waffle", "noodle", "nugget", "sauce", "toast",

	// Crypto and market furniture
	"ledger", "wallet", "keys", "vault", "chain",
	"block", "hash", "nonce", "oracle", "bridge",
	"candle", "chart", "ticker", "degree", "margin",
	"pump", "dip", "peak", "floor", "whitepaper",
	"airdrop", "faucet", "miner", "validator", "node",
	"gas", "gwei", "satoshi", "halving", "fork",
	"yield", "stake", "farm", "pool", "swap",
	"mint", "burn", "vest", "snapshot", "treasury",
}

// Generate creates a random token identifier in "adjective-noun" format from
// the themed word collections. Uses crypto/rand so one-off names are
// unpredictable; deterministic seeding lives on Generator.
//
// Returns IDs in the format: "adjective-noun" (e.g., "bullish-doge",
// "cosmic-otter"), lowercase and valid as token IDs everywhere the platform
// accepts one.
func Generate() string {
	adjective := adjectives[randomIndex(len(adjectives))]
	noun := nouns[randomIndex(len(nouns))]
	return fmt.Sprintf("%s-%s", adjective, noun)
}

// randomIndex generates a random index within the specified range using
// crypto/rand for unpredictable selection, with a fallback index if the
// random source fails.
func randomIndex(max int) int {
	if max <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// Fallback to a simple index if crypto/rand fails
		return 0
	}

	return int(n.Int64())
}

// GenerateMany creates multiple unique token IDs with collision detection
// for bulk seeding scenarios. Tracks generated names to ensure uniqueness
// within the requested batch.
//
// Uses retry mechanisms with bounded attempts (100 max) to handle vocabulary
// exhaustion gracefully while maintaining performance. Prevents infinite
// loops when the requested batch approaches the vocabulary space.
func GenerateMany(count int) []string {
	if count <= 0 {
		return []string{}
	}

	names := make([]string, count)
	used := make(map[string]bool)

	for i := 0; i < count; i++ {
		var name string
		attempts := 0

		// Try to generate a unique name, with a reasonable retry limit
		for {
			name = generateFrom(func(max int) int { return randomIndex(max) })
			if !used[name] || attempts > 100 {
				break
			}
			attempts++
		}

		used[name] = true
		names[i] = name
	}

	return names
}

// generateFrom builds one name using the supplied index picker, shared by
// the crypto-random and seeded paths
func generateFrom(pick func(max int) int) string {
	return fmt.Sprintf("%s-%s", adjectives[pick(len(adjectives))], nouns[pick(len(nouns))])
}

// Generator produces a deterministic name sequence from a seed. The
// development backend seeds one per process so the demo store holds the
// same tokens across restarts.
//
// Not safe for concurrent use; the seeded store generates its fixtures
// once at startup.
type Generator struct {
	rng *mathrand.Rand
}

// NewSeeded creates a generator whose sequence is fully determined by seed
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Generate returns the next token ID in the seeded sequence
func (g *Generator) Generate() string {
	return generateFrom(func(max int) int { return g.rng.Intn(max) })
}

// GenerateMany returns the next count unique token IDs in the seeded
// sequence, with the same bounded collision handling as the package-level
// variant
func (g *Generator) GenerateMany(count int) []string {
	if count <= 0 {
		return []string{}
	}

	names := make([]string, count)
	used := make(map[string]bool)

	for i := 0; i < count; i++ {
		var name string
		attempts := 0

		for {
			name = g.Generate()
			if !used[name] || attempts > 100 {
				break
			}
			attempts++
		}

		used[name] = true
		names[i] = name
	}

	return names
}

// DisplayName turns a token ID into its display label: hyphens become
// spaces and each word is capitalized ("bullish-doge" -> "Bullish Doge")
func DisplayName(id string) string {
	words := strings.Split(id, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Symbol derives a ticker from a token ID: the adjective's initial plus the
// first four letters of the noun, uppercased ("bullish-doge" -> "BDOGE").
// IDs without a hyphen just uppercase their first five letters.
func Symbol(id string) string {
	adjective, noun, found := strings.Cut(id, "-")
	if !found || adjective == "" || noun == "" {
		if len(id) > 5 {
			id = id[:5]
		}
		return strings.ToUpper(id)
	}

	if len(noun) > 4 {
		noun = noun[:4]
	}
	return strings.ToUpper(adjective[:1] + noun)
}
