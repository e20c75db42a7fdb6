// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"property-workers/internal/common/config"
	"property-workers/internal/common/database"
	"property-workers/internal/common/logger"
	"property-workers/internal/models"
	"property-workers/internal/store"

	sendinquirynotification "property-workers/internal/workers/listing/send-inquiry-notification"
	validatelistingstep "property-workers/internal/workers/listing/validate-listing-step"
	executepropertysearch "property-workers/internal/workers/search/execute-property-search"
	getsearchsuggestions "property-workers/internal/workers/search/get-search-suggestions"
	parsesearchfilters "property-workers/internal/workers/search/parse-search-filters"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	zapLog = logger.New("info", "console")

	if os.Getenv("E2E_TESTS") != "" {
		client, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         "localhost:26500",
			UsePlaintextConnection: true,
		})
		if err != nil {
			zapLog.Warn("zeebe broker unreachable, broker checks will be skipped", zap.Error(err))
		} else {
			zeebeClient = client
		}
	}

	code := m.Run()

	if zeebeClient != nil {
		zeebeClient.Close()
	}
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("set E2E_TESTS=1 to run against real services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	t.Log("🚀 Starting full E2E test with real services...")

	cfg := loadLocalConfig(t)

	pg, redisClient := assertServicesConnectivity(ctx, t, cfg)
	defer pg.Close()
	defer redisClient.Close()

	createSearchSchema(ctx, t, pg.DB)
	seedTestData(ctx, t, pg.DB)

	propertyStore := store.NewPropertyStore(pg.DB)
	log := logger.NewZapAdapter(zapLog)

	t.Run("SearchPipeline", func(t *testing.T) {
		testSearchPipeline(ctx, t, propertyStore, redisClient, log)
	})
	t.Run("ListingWorkers", func(t *testing.T) {
		testListingWorkers(ctx, t, propertyStore, log)
	})

	t.Log("✅ ALL TESTS PASSED — full E2E pipeline successful!")
}

// loadLocalConfig loads the base config and forces every service host to
// localhost so the suite runs against docker-compose regardless of what the
// config files say.
func loadLocalConfig(t *testing.T) *config.Config {
	cfg, err := config.Load()
	require.NoError(t, err, "config should load")

	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	cfg.Camunda.BrokerAddress = "localhost:26500"
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = "postgres"
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = "postgres"
	}
	return cfg
}

func assertServicesConnectivity(ctx context.Context, t *testing.T, cfg *config.Config) (*database.PostgresClient, *database.RedisClient) {
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "postgres should be reachable")
	require.NoError(t, pg.DB.PingContext(ctx))
	t.Log("✅ PostgreSQL connected")

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "redis should be reachable")
	require.NoError(t, redisClient.Client.Ping(ctx).Err())
	t.Log("✅ Redis connected")

	if es, err := database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
		t.Logf("⚠️  Elasticsearch unavailable, suggestions fall back to postgres: %v", err)
	} else if _, err := es.Client.Info(); err != nil {
		t.Logf("⚠️  Elasticsearch not responding: %v", err)
	} else {
		t.Log("✅ Elasticsearch connected")
	}

	if zeebeClient != nil {
		_, err := zeebeClient.NewTopologyCommand().Send(ctx)
		assert.NoError(t, err, "zeebe topology should respond")
		t.Log("✅ Zeebe broker connected")
	}

	return pg, redisClient
}

// createSearchSchema installs the tables and search functions the workers
// depend on. Every statement is idempotent so the suite can rerun against a
// dirty database.
func createSearchSchema(ctx context.Context, t *testing.T, db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			full_name TEXT,
			email TEXT,
			phone TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			owner_id TEXT,
			title TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			city TEXT,
			state TEXT,
			area NUMERIC NOT NULL DEFAULT 0,
			area_unit TEXT,
			flow_type TEXT NOT NULL,
			subtype TEXT,
			bedrooms INT,
			bathrooms INT,
			land_type TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			primary_image TEXT,
			code TEXT UNIQUE
		)`,
		`CREATE OR REPLACE FUNCTION search_residential_properties(
			p_query TEXT, p_city TEXT, p_state TEXT, p_transaction TEXT, p_subtypes TEXT[],
			p_bedrooms INT, p_bathrooms INT,
			p_min_price NUMERIC, p_max_price NUMERIC,
			p_min_area NUMERIC, p_max_area NUMERIC,
			p_limit INT, p_offset INT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE p.flow_type LIKE 'residential%' AND p.status = 'active'
				AND (p_query IS NULL OR p.title ILIKE '%' || p_query || '%')
				AND (p_city IS NULL OR p.city ILIKE p_city)
				AND (p_state IS NULL OR p.state ILIKE p_state)
				AND (p_transaction IS NULL OR p.flow_type ILIKE '%' || p_transaction || '%')
				AND (p_subtypes IS NULL OR cardinality(p_subtypes) = 0 OR p.subtype = ANY (p_subtypes))
				AND (p_bedrooms = 0 OR p.bedrooms >= p_bedrooms)
				AND (p_bathrooms = 0 OR p.bathrooms >= p_bathrooms)
				AND (p_max_price = 0 OR p.price BETWEEN p_min_price AND p_max_price)
				AND (p_max_area = 0 OR p.area BETWEEN p_min_area AND p_max_area)
			ORDER BY p.created_at DESC
			LIMIT p_limit OFFSET p_offset;
		END $$`,
		`CREATE OR REPLACE FUNCTION search_commercial_properties(
			p_query TEXT, p_city TEXT, p_state TEXT, p_transaction TEXT, p_subtypes TEXT[],
			p_min_price NUMERIC, p_max_price NUMERIC,
			p_min_area NUMERIC, p_max_area NUMERIC,
			p_limit INT, p_offset INT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE (p.flow_type LIKE 'commercial%' OR p.flow_type = 'coworking')
				AND p.status = 'active'
				AND (p_query IS NULL OR p.title ILIKE '%' || p_query || '%')
				AND (p_city IS NULL OR p.city ILIKE p_city)
				AND (p_state IS NULL OR p.state ILIKE p_state)
				AND (p_transaction IS NULL OR p.flow_type ILIKE '%' || p_transaction || '%')
				AND (p_subtypes IS NULL OR cardinality(p_subtypes) = 0 OR p.subtype = ANY (p_subtypes))
				AND (p_max_price = 0 OR p.price BETWEEN p_min_price AND p_max_price)
				AND (p_max_area = 0 OR p.area BETWEEN p_min_area AND p_max_area)
			ORDER BY p.created_at DESC
			LIMIT p_limit OFFSET p_offset;
		END $$`,
		`CREATE OR REPLACE FUNCTION search_land_properties(
			p_query TEXT, p_city TEXT, p_state TEXT, p_transaction TEXT, p_subtypes TEXT[],
			p_min_price NUMERIC, p_max_price NUMERIC,
			p_min_area NUMERIC, p_max_area NUMERIC,
			p_limit INT, p_offset INT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE p.flow_type LIKE 'land%' AND p.status = 'active'
				AND (p_query IS NULL OR p.title ILIKE '%' || p_query || '%')
				AND (p_city IS NULL OR p.city ILIKE p_city)
				AND (p_state IS NULL OR p.state ILIKE p_state)
				AND (p_subtypes IS NULL OR cardinality(p_subtypes) = 0 OR p.land_type = ANY (p_subtypes))
				AND (p_max_price = 0 OR p.price BETWEEN p_min_price AND p_max_price)
				AND (p_max_area = 0 OR p.area BETWEEN p_min_area AND p_max_area)
			ORDER BY p.created_at DESC
			LIMIT p_limit OFFSET p_offset;
		END $$`,
		`CREATE OR REPLACE FUNCTION search_property_by_code(p_code TEXT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE p.code = p_code AND p.status = 'active';
		END $$`,
		`CREATE OR REPLACE FUNCTION search_property_by_code_ci(p_code TEXT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE upper(p.code) = upper(p_code) AND p.status = 'active';
		END $$`,
		`CREATE OR REPLACE FUNCTION get_latest_properties(p_limit INT, p_offset INT)
		RETURNS TABLE(
			id TEXT, owner_id TEXT, owner_email TEXT, title TEXT, price NUMERIC,
			city TEXT, state TEXT, area NUMERIC, area_unit TEXT, flow_type TEXT,
			subtype TEXT, bedrooms INT, bathrooms INT, land_type TEXT, status TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ, total_count BIGINT,
			primary_image TEXT, code TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT p.id, p.owner_id, u.email, p.title, p.price,
				p.city, p.state, p.area, p.area_unit, p.flow_type,
				p.subtype, p.bedrooms, p.bathrooms, p.land_type, p.status,
				p.created_at, p.updated_at, COUNT(*) OVER (),
				p.primary_image, p.code
			FROM properties p LEFT JOIN users u ON u.id = p.owner_id
			WHERE p.status = 'active'
			ORDER BY p.created_at DESC
			LIMIT p_limit OFFSET p_offset;
		END $$`,
		`CREATE OR REPLACE FUNCTION get_title_suggestions(p_prefix TEXT, p_max INT)
		RETURNS TABLE(title TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT DISTINCT p.title FROM properties p
			WHERE p.status = 'active' AND p.title ILIKE p_prefix || '%'
			LIMIT p_max;
		END $$`,
		`CREATE OR REPLACE FUNCTION get_location_suggestions(p_prefix TEXT, p_max INT)
		RETURNS TABLE(city TEXT)
		LANGUAGE plpgsql AS $$
		BEGIN
			RETURN QUERY
			SELECT DISTINCT p.city FROM properties p
			WHERE p.status = 'active' AND p.city ILIKE p_prefix || '%'
			LIMIT p_max;
		END $$`,
	}

	for _, stmt := range statements {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "schema statement failed:\n%s", stmt)
	}
	t.Log("✅ Tables and search functions created")
}

func seedTestData(ctx context.Context, t *testing.T, db *sql.DB) {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, full_name, email, phone) VALUES
			('u-e2e-1', 'Ravi Teja', 'ravi.e2e@example.com', '+919900000001')
		ON CONFLICT (id) DO NOTHING`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO properties
			(id, owner_id, title, price, city, state, area, area_unit, flow_type, subtype, bedrooms, bathrooms, land_type, code) VALUES
			('p-e2e-1', 'u-e2e-1', '2BHK Apartment in Gachibowli', 7500000, 'Hyderabad', 'Telangana', 1150, 'sqft', 'residential_sale', 'apartment', 2, 2, NULL, 'GACH01'),
			('p-e2e-2', 'u-e2e-1', '3BHK Villa in Kondapur', 45000, 'Hyderabad', 'Telangana', 2200, 'sqft', 'residential_rent', 'villa', 3, 3, NULL, 'KOND03'),
			('p-e2e-3', 'u-e2e-1', 'Office Space in Hitec City', 120000, 'Hyderabad', 'Telangana', 3000, 'sqft', 'commercial_rent', 'office', NULL, NULL, NULL, 'HITE05'),
			('p-e2e-4', 'u-e2e-1', 'Residential Plot in Shadnagar', 2500000, 'Shadnagar', 'Telangana', 267, 'sqyd', 'land_sale', NULL, NULL, NULL, 'residential_plot', 'SHAD09')
		ON CONFLICT (id) DO NOTHING`)
	require.NoError(t, err)
	t.Log("✅ Test data seeded")
}

func testSearchPipeline(ctx context.Context, t *testing.T, propertyStore *store.PropertyStore, redisClient *database.RedisClient, log logger.Logger) {
	// Step 1: a filter mutation produces the normalized state the search runs on.
	parser := parsesearchfilters.NewHandler(parsesearchfilters.LoadConfig(), log)
	parsed, err := parser.Execute(ctx, &parsesearchfilters.Input{
		Action: parsesearchfilters.ActionUpdateFilter,
		Field:  parsesearchfilters.FieldPropertyType,
		Value:  models.PropertyTypeResidential,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyTypeResidential, parsed.Filters.SelectedPropertyType)
	assert.False(t, parsed.IsEmpty)
	assert.True(t, parsed.ShowBHK)
	t.Log("✅ parse-search-filters produced normalized state")

	// Step 2: the normalized state drives the category search.
	searcher := executepropertysearch.NewHandler(executepropertysearch.LoadConfig(), propertyStore, nil, log)
	searchOut, err := searcher.Execute(ctx, &executepropertysearch.Input{Filters: parsed.Filters})
	require.NoError(t, err)
	require.NotEmpty(t, searchOut.Results)
	assert.GreaterOrEqual(t, searchOut.TotalCount, int64(2))
	for _, r := range searchOut.Results {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.TransactionType)
		assert.NotEmpty(t, r.OwnerName)
	}
	t.Logf("✅ execute-property-search returned %d residential results", len(searchOut.Results))

	// Empty filters fall back to the latest listings across categories.
	latest, err := searcher.Execute(ctx, &executepropertysearch.Input{Filters: models.DefaultFilters()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(latest.Results), 4)
	t.Log("✅ empty filters returned latest listings")

	// A six-char code in the query bypasses the facet dispatch entirely.
	codeFilters := models.DefaultFilters()
	codeFilters.SearchQuery = "gach01"
	codeOut, err := searcher.Execute(ctx, &executepropertysearch.Input{Filters: codeFilters})
	require.NoError(t, err)
	require.Len(t, codeOut.Results, 1)
	assert.Equal(t, "2BHK Apartment in Gachibowli", codeOut.Results[0].Title)
	t.Log("✅ property code lookup matched case-insensitively")

	// Step 3: suggestions hit postgres first, then redis on the repeat call.
	cache := getsearchsuggestions.NewSuggestionCache(redisClient.Client, time.Minute)
	suggester := getsearchsuggestions.NewHandler(getsearchsuggestions.LoadConfig(), cache, nil, propertyStore, log)

	first, err := suggester.Execute(ctx, &getsearchsuggestions.Input{Query: "2bhk"})
	require.NoError(t, err)
	require.NotEmpty(t, first.Suggestions)
	assert.False(t, first.FromCache)

	second, err := suggester.Execute(ctx, &getsearchsuggestions.Input{Query: "2bhk"})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	t.Log("✅ get-search-suggestions served the repeat query from redis")

	codeSuggestion, err := suggester.Execute(ctx, &getsearchsuggestions.Input{Query: "KOND03"})
	require.NoError(t, err)
	assert.Equal(t, "KOND03", codeSuggestion.PropertyCode)
	t.Log("✅ code-shaped query produced a code suggestion")
}

func testListingWorkers(ctx context.Context, t *testing.T, propertyStore *store.PropertyStore, log logger.Logger) {
	validator := validatelistingstep.NewHandler(validatelistingstep.LoadConfig(), log)

	valid, err := validator.Execute(ctx, &validatelistingstep.Input{
		FlowType: "residential_sale",
		Step:     "basic_details",
		Data: map[string]interface{}{
			"title":           "2BHK Apartment in Gachibowli",
			"propertySubtype": "apartment",
			"bedrooms":        2,
			"bathrooms":       2,
			"area":            1150,
			"areaUnit":        "sqft",
		},
	})
	require.NoError(t, err)
	assert.True(t, valid.Valid)

	invalid, err := validator.Execute(ctx, &validatelistingstep.Input{
		FlowType: "residential_sale",
		Step:     "basic_details",
		Data:     map[string]interface{}{"title": "2BHK Apartment"},
	})
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	assert.NotEmpty(t, invalid.MissingFields)
	t.Log("✅ validate-listing-step accepted complete data and flagged missing fields")

	// Channels stay disabled here so no real email or SMS leaves the suite;
	// the worker still resolves the owner contact from postgres.
	notifier := sendinquirynotification.NewHandlerWithClients(
		&sendinquirynotification.Config{Timeout: 30 * time.Second},
		propertyStore, nil, nil, log)

	note, err := notifier.Execute(ctx, &sendinquirynotification.Input{
		PropertyID:       "p-e2e-1",
		PropertyTitle:    "2BHK Apartment in Gachibowli",
		OwnerID:          "u-e2e-1",
		InquirerName:     "Asha",
		InquirerEmail:    "asha@example.com",
		Message:          "Is the flat still available?",
		NotificationType: sendinquirynotification.TypeNewInquiry,
	})
	require.NoError(t, err)
	assert.Equal(t, sendinquirynotification.StatusDisabled, note.Status)
	assert.NotEmpty(t, note.NotificationID)
	t.Log("✅ send-inquiry-notification resolved the owner and honored disabled channels")
}
