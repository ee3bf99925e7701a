// Package mockstats generates the fbref-style season player stats feed used
// until a licensed stats source is wired in. Output is fully determined by
// the seed so reloads stage identical rows.
package mockstats

import (
	"fmt"
	"math/rand"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

var teams = []string{
	"Arsenal FC", "Aston Villa FC", "Brentford FC", "Brighton & Hove Albion FC",
	"Burnley FC", "Chelsea FC", "Crystal Palace FC", "Everton FC", "Fulham FC",
	"Liverpool FC", "Luton Town FC", "Manchester City FC", "Manchester United FC",
	"Newcastle United FC", "Nottingham Forest FC", "Sheffield United FC",
	"Tottenham Hotspur FC", "West Ham United FC", "Wolverhampton Wanderers FC",
	"AFC Bournemouth",
}

var playersByTeam = map[string][]string{
	"Arsenal FC":                 {"Saka", "Odegaard", "Martinelli", "Partey", "White", "Zinchenko", "Jesus", "Trossard"},
	"Manchester City FC":         {"De Bruyne", "Haaland", "Rodri", "Dias", "Grealish", "Alvarez", "Foden", "Stones"},
	"Liverpool FC":               {"Salah", "Van Dijk", "Alisson", "Szoboszlai", "Mac Allister", "Nunez", "Alexander-Arnold", "Gakpo"},
	"Chelsea FC":                 {"Sterling", "James", "Gallagher", "Fernandez", "Mudryk", "Palmer", "Jackson", "Caicedo"},
	"Manchester United FC":       {"Fernandes", "Martial", "Rashford", "McTominay", "Casemiro", "Shaw", "Varane", "Dalot"},
	"Newcastle United FC":        {"Isak", "Joelinton", "Trippier", "Guimaraes", "Botman", "Gordon", "Almiron", "Tonali"},
	"Brighton & Hove Albion FC":  {"Mitoma", "Gross", "Welbeck", "Estupinan", "Dunk", "March", "Ferguson", "Adingra"},
	"Brentford FC":               {"Mbeumo", "Toney", "Ajer", "Dasilva", "Hickey", "Jensen", "Wissa", "Norgaard"},
	"Tottenham Hotspur FC":       {"Son", "Maddison", "Richarlison", "Kulusevski", "Porro", "Romero", "Van de Ven", "Sarr"},
	"Crystal Palace FC":          {"Olise", "Zaha", "Guehi", "Eze", "Mateta", "Mitchell", "Andersen", "Ward"},
	"Everton FC":                 {"Calvert-Lewin", "McNeil", "Doucoure", "Harrison", "Tarkowski", "Pickford", "Coleman", "Onana"},
	"West Ham United FC":         {"Paqueta", "Ings", "Soucek", "Bowen", "Antonio", "Zouma", "Coufal", "Emerson"},
	"Fulham FC":                  {"Pereira", "Adarabioyo", "Iwobi", "Palhinha", "Willian", "Ream", "Muniz", "Leno"},
	"Wolverhampton Wanderers FC": {"Neto", "Cunha", "Lemina", "Ait-Nouri", "Hwang", "Kilman", "Semedo", "Sa"},
	"Nottingham Forest FC":       {"Awoniyi", "Hudson-Odoi", "Wood", "Yates", "Murillo", "Niakhate", "Williams", "Gibbs-White"},
	"AFC Bournemouth":            {"Solanke", "Kluivert", "Mepham", "Cook", "Tavernier", "Semenyo", "Billing", "Senesi"},
	"Aston Villa FC":             {"Watkins", "Bailey", "McGinn", "Luiz", "Martinez", "Konsa", "Cash", "Ramsey"},
	"Burnley FC":                 {"Amdouni", "Vitinha", "Brownhill", "Foster", "Rodriguez", "Berge", "Gudmundsson", "Roberts"},
	"Luton Town FC":              {"Adebayo", "Barkley", "Clark", "Lockyer", "Ogbene", "Osho", "Kaminski", "Morris"},
	"Sheffield United FC":        {"McBurnie", "Hamer", "Ahmedhodzic", "Lowe", "Baldock", "Bogle", "Norwood", "Robinson"},
}

// Generate produces up to maxRows deterministic stat rows for the given
// seasons (season names like "2023/2024"). The same seed and inputs always
// yield the same rows, in the same order.
func Generate(seed int64, seasons []string, maxRows int) []staging.PlayerStatRow {
	rng := rand.New(rand.NewSource(seed))

	var rows []staging.PlayerStatRow
	for _, season := range seasons {
		for _, team := range teams {
			players := playersByTeam[team]
			for idx, player := range players {
				if maxRows > 0 && len(rows) >= maxRows {
					return rows
				}

				appearances := 20 + rng.Intn(19)
				minutes := appearances*60 + rng.Intn(appearances*30+1)
				rows = append(rows, staging.PlayerStatRow{
					PlayerName:    player,
					TeamName:      team,
					SeasonName:    season,
					Appearances:   appearances,
					Goals:         (idx + 1 + rng.Intn(6)) % 20,
					Assists:       (idx + 1 + rng.Intn(4)) % 10,
					MinutesPlayed: minutes,
					YellowCards:   idx % 3,
					RedCards:      rng.Intn(8) / 7,
					Status:        staging.StatusLoaded,
				})
			}
		}
	}

	return rows
}

// SourceKey names the manifest entry for one generated batch. Every input
// that changes the output is part of the key, so changing the row cap is a
// new batch rather than an already-processed one.
func SourceKey(seed int64, seasons []string, maxRows int) string {
	return fmt.Sprintf("mock_player_stats_seed_%d_seasons_%d_rows_%d", seed, len(seasons), maxRows)
}
