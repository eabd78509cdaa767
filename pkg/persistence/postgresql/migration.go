package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE cards (
				id VARCHAR(255) PRIMARY KEY,
				scryfall_id VARCHAR(255) NOT NULL DEFAULT '',
				oracle_id VARCHAR(255) NOT NULL DEFAULT '',
				name VARCHAR(255) NOT NULL,
				mana_cost VARCHAR(64),
				mana_value DOUBLE PRECISION NOT NULL DEFAULT 0,
				color_identity JSONB NOT NULL DEFAULT '[]',
				type_line VARCHAR(255) NOT NULL DEFAULT '',
				oracle_text TEXT,
				power VARCHAR(16),
				toughness VARCHAR(16),
				loyalty VARCHAR(16),
				rarity VARCHAR(32) NOT NULL DEFAULT '',
				set_code VARCHAR(16) NOT NULL DEFAULT '',
				collector_number VARCHAR(16) NOT NULL DEFAULT '',
				image_uri TEXT NOT NULL DEFAULT '',
				keywords JSONB NOT NULL DEFAULT '[]',
				legalities JSONB NOT NULL DEFAULT '{}',
				price DOUBLE PRECISION,
				produced_mana JSONB NOT NULL DEFAULT '[]',
				released_at VARCHAR(16) NOT NULL DEFAULT '',
				layout VARCHAR(32) NOT NULL DEFAULT ''
			);

			CREATE UNIQUE INDEX idx_cards_name_lower ON cards(LOWER(name));
			CREATE INDEX idx_cards_mana_value ON cards(mana_value);
			CREATE INDEX idx_cards_type_line ON cards(type_line);
			CREATE INDEX idx_cards_color_identity ON cards USING GIN (color_identity);
		`,
		2: `
			CREATE TABLE decks (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL UNIQUE,
				format VARCHAR(64) NOT NULL,
				description TEXT,
				colors JSONB NOT NULL DEFAULT '[]',
				strategy_tags JSONB NOT NULL DEFAULT '[]',
				main_deck JSONB NOT NULL DEFAULT '[]',
				lands JSONB NOT NULL DEFAULT '[]',
				sideboard JSONB NOT NULL DEFAULT '[]',
				statistics JSONB,
				provenance JSONB,
				owner_id VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_decks_format ON decks(format);
			CREATE INDEX idx_decks_owner_id ON decks(owner_id);
			CREATE INDEX idx_decks_colors ON decks USING GIN (colors);
			CREATE INDEX idx_decks_strategy_tags ON decks USING GIN (strategy_tags);
		`,
		3: `
			CREATE TABLE user_resources (
				user_id VARCHAR(255) PRIMARY KEY,
				common_wildcards INT NOT NULL DEFAULT 0,
				uncommon_wildcards INT NOT NULL DEFAULT 0,
				rare_wildcards INT NOT NULL DEFAULT 0,
				mythic_wildcards INT NOT NULL DEFAULT 0,
				gold INT NOT NULL DEFAULT 0,
				gems INT NOT NULL DEFAULT 0,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);
		`,
	}
}
