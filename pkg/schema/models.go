// Package schema declares the tables migrated from a Symbiota database.
//
// Each table is a struct. The `db` tag names the destination column, the
// optional `src` tag gives the source expression when it differs from the
// destination name. Column nullability follows the Go type: plain int64
// fields are NOT NULL, sql.Null* fields accept NULL.
package schema

import (
	"database/sql"
)

// Model is implemented by every table struct.
type Model interface {
	// TableName returns the name of the table both in the source and in
	// the destination.
	TableName() string
}

// OccurrenceKey is a narrow projection of omoccurrences used to select
// everything else the migration needs.
type OccurrenceKey struct {
	OccID          int64         `db:"occid"`
	CollID         int64         `db:"collid"`
	TidInterpreted sql.NullInt64 `db:"tidinterpreted"`
}

func (OccurrenceKey) TableName() string { return "omoccurrences" }

// TaxonUnit is a taxonomic rank definition.
type TaxonUnit struct {
	RankID            int64          `db:"rankid"`
	RankName          sql.NullString `db:"rankname"`
	InitialTimestamp  sql.NullTime   `db:"initialTimestamp"`
	ModifiedTimestamp sql.NullTime   `db:"modifiedTimestamp"`
}

func (TaxonUnit) TableName() string { return "taxonunits" }

// Institution owns collections.
type Institution struct {
	IID               int64          `db:"iid"`
	InstitutionCode   sql.NullString `db:"institutionCode"`
	City              sql.NullString `db:"city"`
	StateProvince     sql.NullString `db:"stateProvince"`
	PostalCode        sql.NullString `db:"postalCode"`
	Country           sql.NullString `db:"country"`
	InitialTimestamp  sql.NullTime   `db:"initialTimestamp" src:"IntialTimeStamp"`
	ModifiedTimestamp sql.NullTime   `db:"modifiedTimestamp"`
}

func (Institution) TableName() string { return "institutions" }

// Collection groups occurrences. IID is NULL for collections without an
// owning institution.
type Collection struct {
	CollID           int64          `db:"collid"`
	CollectionCode   sql.NullString `db:"collectionCode"`
	CollectionName   sql.NullString `db:"collectionName"`
	IID              sql.NullInt64  `db:"iid"`
	CollType         sql.NullString `db:"collType"`
	ManagementType   sql.NullString `db:"managementType"`
	InitialTimestamp sql.NullTime   `db:"initialTimestamp"`
}

func (Collection) TableName() string { return "omcollections" }

// Taxon is a scientific name with its rank.
type Taxon struct {
	Tid               int64          `db:"tid"`
	RankID            sql.NullInt64  `db:"rankId"`
	SciName           sql.NullString `db:"sciName"`
	InitialTimestamp  sql.NullTime   `db:"initialTimestamp"`
	ModifiedTimestamp sql.NullTime   `db:"modifiedTimestamp"`
}

func (Taxon) TableName() string { return "taxa" }

// TaxaEnumTree is an edge of the taxonomic hierarchy. ParentTid is NULL for
// roots.
type TaxaEnumTree struct {
	Tid              int64         `db:"tid"`
	ParentTid        sql.NullInt64 `db:"parenttid"`
	InitialTimestamp sql.NullTime  `db:"initialTimestamp"`
}

func (TaxaEnumTree) TableName() string { return "taxaenumtree" }

// EdgeKey identifies an edge regardless of its payload.
type EdgeKey struct {
	Tid       int64
	ParentTid sql.NullInt64
}

// Key returns the (tid, parenttid) pair of the edge.
func (e TaxaEnumTree) Key() EdgeKey {
	return EdgeKey{Tid: e.Tid, ParentTid: e.ParentTid}
}

// Occurrence is a full omoccurrences record.
type Occurrence struct {
	OccID                         int64           `db:"occid"`
	CollID                        int64           `db:"collid"`
	TidInterpreted                sql.NullInt64   `db:"tidinterpreted"`
	AssociatedCollectors          sql.NullString  `db:"associatedCollectors"`
	AssociatedOccurrences         sql.NullString  `db:"associatedOccurrences"`
	AssociatedTaxa                sql.NullString  `db:"associatedTaxa"`
	BasisOfRecord                 sql.NullString  `db:"basisOfRecord"`
	CatalogNumber                 sql.NullString  `db:"catalogNumber"`
	CoordinatePrecision           sql.NullFloat64 `db:"coordinatePrecision"`
	CoordinateUncertaintyInMeters sql.NullFloat64 `db:"coordinateUncertaintyInMeters"`
	Country                       sql.NullString  `db:"country"`
	County                        sql.NullString  `db:"county"`
	DateIdentified                sql.NullString  `db:"dateIdentified"`
	Day                           sql.NullInt64   `db:"day"`
	DecimalLatitude               sql.NullFloat64 `db:"decimalLatitude"`
	DecimalLongitude              sql.NullFloat64 `db:"decimalLongitude"`
	EndDayOfYear                  sql.NullInt64   `db:"endDayOfYear"`
	EventDate                     sql.NullString  `db:"eventDate"`
	Family                        sql.NullString  `db:"family"`
	FieldNotes                    sql.NullString  `db:"fieldNotes"`
	FieldNumber                   sql.NullString  `db:"fieldnumber"`
	Genus                         sql.NullString  `db:"genus"`
	Habitat                       sql.NullString  `db:"habitat"`
	IdentificationQualifier       sql.NullString  `db:"identificationQualifier"`
	IdentificationReferences      sql.NullString  `db:"identificationReferences"`
	IdentificationRemarks         sql.NullString  `db:"identificationRemarks"`
	IdentifiedBy                  sql.NullString  `db:"identifiedBy"`
	InfraspecificEpithet          sql.NullString  `db:"infraspecificEpithet"`
	LatestDateCollected           sql.NullString  `db:"latestDateCollected"`
	LifeStage                     sql.NullString  `db:"lifeStage"`
	Locality                      sql.NullString  `db:"locality"`
	LocationID                    sql.NullString  `db:"locationID"`
	LocationRemarks               sql.NullString  `db:"locationRemarks"`
	Month                         sql.NullInt64   `db:"month"`
	Municipality                  sql.NullString  `db:"municipality"`
	OccurrenceRemarks             sql.NullString  `db:"occurrenceRemarks"`
	OtherCatalogNumbers           sql.NullString  `db:"otherCatalogNumbers"`
	PreviousIdentifications       sql.NullString  `db:"previousIdentifications"`
	RecordedBy                    sql.NullString  `db:"recordedBy"`
	SamplingEffort                sql.NullString  `db:"samplingEffort"`
	SamplingProtocol              sql.NullString  `db:"samplingProtocol"`
	ScientificName                sql.NullString  `db:"scientificName"`
	ScientificNameAuthorship      sql.NullString  `db:"scientificNameAuthorship"`
	SciName                       sql.NullString  `db:"sciname"`
	Sex                           sql.NullString  `db:"sex"`
	SpecificEpithet               sql.NullString  `db:"specificEpithet"`
	StartDayOfYear                sql.NullInt64   `db:"startDayOfYear"`
	StateProvince                 sql.NullString  `db:"stateProvince"`
	Substrate                     sql.NullString  `db:"substrate"`
	TaxonRemarks                  sql.NullString  `db:"taxonRemarks"`
	TypeStatus                    sql.NullString  `db:"typeStatus"`
	VerbatimAttributes            sql.NullString  `db:"verbatimAttributes"`
	VerbatimElevation             sql.NullString  `db:"verbatimElevation"`
	VerbatimEventDate             sql.NullString  `db:"verbatimEventDate"`
	Year                          sql.NullInt64   `db:"year"`
	InitialTimestamp              sql.NullTime    `db:"initialTimestamp" src:"dateEntered"`
	ModifiedTimestamp             sql.NullTime    `db:"modifiedTimestamp" src:"dateLastModified"`
}

func (Occurrence) TableName() string { return "omoccurrences" }
