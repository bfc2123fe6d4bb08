package kqlparser

import (
	"sort"
	"strings"
)

// Word lists for the standard dialect. Engine dialects extend these with
// their own vocabulary below.
const standardKeywords = `
absolute action add after all allocate alter and any are as asc assertion
at authorization before begin between both breadth by call cascade
cascaded case cast catalog check close collate collation column commit
condition connect connection constraint constraints constructor continue
corresponding count create cross cube current current_date current_path
current_role current_time current_timestamp current_user cursor cycle
data day deallocate declare default deferrable deferred delete depth
deref desc describe descriptor deterministic diagnostics disconnect
distinct do domain drop dynamic each else elseif end equals escape except
exception exec execute exists exit external fetch first for foreign found
free from full function general get global go goto grant group grouping
handle having hold hour identity if immediate in indicator initially
inner inout input insert intersect into is isolation join key language
last lateral leading leave left level like limit local localtime
localtimestamp locator loop map match method minute modifies module month
names natural nesting new next no none not of old on only open option or
order ordinality out outer output overlaps pad parameter partial path
prepare preserve primary prior privileges procedure public read reads
recursive redo ref references referencing relative release repeat
resignal restrict result return returns revoke right role rollback
rollup routine row rows savepoint schema scroll search second section
select session session_user set sets signal similar size some space
specific specifictype sql sqlexception sqlstate sqlwarning start state
static system_user table temporary then timezone_hour timezone_minute to
trailing transaction translation treat trigger under undo union unique
unnest until update usage user using value values view when whenever
where while with without work write year zone`

const standardTypes = `
array binary bit boolean char character clob date decimal double float
int integer interval large national nchar nclob numeric object precision
real smallint time timestamp varchar varying`

const mysqlKeywords = `
accessible algorithm analyze asensitive auto_increment autocommit avg
avg_row_length binlog btree cache change changed charset checksum
coalesce collations columns comment committed completion concurrent
consistent convert database databases day_hour day_microsecond
day_minute day_second delay_key_write delayed delimiter distinctrow div
dual dumpfile enable enclosed ends engine engines enum errors escaped
event events every explain extended fast fields flush force fulltext
grants group_concat handler hash high_priority hosts hour_microsecond
hour_minute hour_second ignore index infile innodb insert_method install
invoker iterate keys kill linear lines list load lock logs low_priority
master max_rows maxvalue memory merge minute_microsecond minute_second
mod mode modify mutex mysql no_write_to_binlog offline offset online
optimize optionally outfile pack_keys parser partition partitions
password phase plugin plugins prev processlist profile profiles purge
quick range read_write rebuild recover regexp relaylog remove rename
reorganize repair repeatable replace require resume rlike row_format
rtree schedule schemas second_microsecond security sensitive separator
serializable server share show slave slow snapshot soname spatial
sql_big_result sql_buffer_result sql_cache sql_calc_found_rows
sql_no_cache sql_small_result ssl starting starts status storage
straight_join tables tablespace terminated triggers truncate
uncommitted uninstall unlock upgrade use utc_date utc_time utc_timestamp
variables views warnings xa xor year_month zerofill`

const mysqlTypes = `
bool blob bigint datetime enum float4 float8 int1 int2 int3 int4 int8
long longblob longtext medium mediumblob mediumint mediumtext signed
text tinyblob tinyint tinytext unsigned varbinary varcharacter`

const mysqlBuiltin = `
charset clear edit ego help nopager notee nowarning pager print prompt
quit rehash source status system tee`

const mariadbExtraKeywords = `
always generated hard persistent shutdown soft virtual`

const postgresKeywords = `
abort analyse analyze attach cluster comment concurrently conflict copy
cost csv current_catalog current_schema database delimiter delimiters
detach dictionary disable discard encoding encrypted enum event exclude
excluding exclusive explain extension family force format forward freeze
functions granted greatest handler header ilike immutable import include
including increment index indexes inherit inherits inline instead
invoker isnull label leakproof least listen load location lock locked
logged mapping materialized maxvalue minvalue mode move notify notnull
nowait nulls off offset oids operator over owned owner parallel parser
partition passing password plans policy prepared procedural procedures
program publication quote range reassign recheck refresh reindex rename
replace replica reset restart returning routines rule schemas sequence
sequences serializable setof share show skip snapshot stable statistics
stdin stdout storage strict subscription support sysid tables tablespace
temp template truncate trusted type types unlisten unlogged vacuum valid
validate validator variadic verbose version views volatile window
wrapper xmlattributes xmlconcat xmlelement xmlexists xmlforest xmlparse
xmlpi xmlroot xmlserialize xmltable yes`

const postgresTypes = `
bigint bigserial bool box bytea cidr circle float4 float8 inet int2
int4 int8 json jsonb line lseg macaddr macaddr8 money path pg_lsn point
polygon serial serial2 serial4 serial8 smallserial text timestamptz
timetz tsquery tsvector txid_snapshot uuid varbit xml`

const sqliteKeywords = `
abort analyze attach autoincrement conflict database detach exclusive
fail glob ignore index indexed instead isnull notnull offset plan pragma
query raise regexp reindex rename replace temp vacuum virtual`

const sqliteTypes = `bool blob int2 int8 text`

const sqliteBuiltin = `
auth backup bail changes check clone databases dbinfo dump echo eqp
explain fullschema headers help import imposter indexes iotrace lint
load log mode nullvalue once open output print prompt quit read restore
save scanstats schema separator session shell show stats tables
testcase timeout timer trace vfsinfo vfslist vfsname width`

const mssqlKeywords = `
break browse bulk clustered commit_work compute containstable dbcc deny
disk distributed dump errlvl exec execute fillfactor file freetext
freetexttable holdlock identity_insert identitycol index lineno merge
nocheck nonclustered offsets opendatasource openquery openrowset
openxml over pivot plan print proc raiserror readtext reconfigure
replication restore rowcount rowguidcol rule save securityaudit
semantickeyphrasetable semanticsimilaritydetailstable
semanticsimilaritytable sessionproperty setuser shutdown statistics
tablesample textsize top tran truncate tsequal unpivot updatetext use
waitfor writetext`

const mssqlTypes = `
bigint datetime datetime2 datetimeoffset geography geometry
hierarchyid image money nchar ntext nvarchar real rowversion
smalldatetime smallmoney sql_variant text tinyint uniqueidentifier
varbinary xml`

const mssqlBuiltin = `
binary_checksum checksum connectionproperty context_info
current_request_id error_line error_message error_number
error_procedure error_severity error_state formatmessage
get_filestream_transaction_context getansinull host_id host_name isnull
isnumeric min_active_rowversion newid newsequentialid rowcount_big
session_context xact_state object_id`

const plkqlKeywords = `
abs acos authid avg bfilename bulk ceil collect constant cos decode
define deterministic dual elsif exception exceptions exp externally
floor forall instr least ln lpad ltrim mod months_between nocopy
nvl others pls_integer power pragma raise record ref replace reverse
round rowid rownum rowtype rpad rtrim sign sin sqlcode sqlerrm sqrt
subtype substr synonym sysdate tan to_char to_date to_number trunc
varray whenever`

const plkqlTypes = `
bfile binary_double binary_float blob byte clob dec long nchar nclob
number nvarchar2 raw rowid urowid varchar2`

const cassandraKeywords = `
add all allow alter and any apply as asc authorize batch begin by
clustering columnfamily compact consistency count create custom delete
desc distinct drop each_quorum exists filtering from grant if in index
insert into key keyspace keyspaces level limit local_one local_quorum
materialized modify nan norecursive nosuperuser not of on one order
password permission permissions primary quorum rename revoke schema
select set storage superuser table three to token truncate ttl two type
unlogged update use user users using values view where with writetime
infinity`

const cassandraTypes = `
ascii bigint blob boolean counter date decimal double duration float
frozen inet int list map set smallint text time timestamp timeuuid
tinyint tuple uuid varchar varint`

// StandardKQL is the default dialect: the shared vocabulary with every
// feature toggle off.
var StandardKQL = Define(DialectSpec{
	Keywords: standardKeywords,
	Types:    standardTypes,
})

// MySQL follows the MySQL flavor: hash and space-gated dash comments,
// backslash escapes, double-quoted strings, unquoted bit literals,
// backtick-quoted identifiers and @ variables.
var MySQL = Define(DialectSpec{
	Keywords:            standardKeywords + mysqlKeywords,
	Types:               standardTypes + mysqlTypes,
	Builtin:             mysqlBuiltin,
	OperatorChars:       "*+-%<>!=&|^",
	HashComments:        true,
	SpaceAfterDashes:    true,
	BackslashEscapes:    true,
	DoubleQuotedStrings: true,
	CharSetCasts:        true,
	UnquotedBitLiterals: true,
	SpecialVar:          "@?",
	IdentifierQuotes:    "`",
})

// MariaDB matches MySQL except that quoted bit literals read as byte
// literals, plus a few of its own keywords.
var MariaDB = Define(DialectSpec{
	Keywords:            standardKeywords + mysqlKeywords + mariadbExtraKeywords,
	Types:               standardTypes + mysqlTypes,
	Builtin:             mysqlBuiltin,
	OperatorChars:       "*+-%<>!=&|^",
	HashComments:        true,
	SpaceAfterDashes:    true,
	BackslashEscapes:    true,
	DoubleQuotedStrings: true,
	CharSetCasts:        true,
	UnquotedBitLiterals: true,
	TreatBitsAsBytes:    true,
	SpecialVar:          "@?",
	IdentifierQuotes:    "`",
})

// PostgreSQL adds dollar-quoted strings, charset casts, the wide
// operator character set and $n parameters.
var PostgreSQL = Define(DialectSpec{
	Keywords:                  standardKeywords + postgresKeywords,
	Types:                     standardTypes + postgresTypes,
	OperatorChars:             "+-*/<>=~!@#%^&|`?",
	DoubleDollarQuotedStrings: true,
	CharSetCasts:              true,
	SpecialVar:                "$?",
})

// SQLite accepts backtick, double-quote and square-bracket identifier
// quoting and the full set of host parameter markers.
var SQLite = Define(DialectSpec{
	Keywords:         standardKeywords + sqliteKeywords,
	Types:            standardTypes + sqliteTypes,
	Builtin:          sqliteBuiltin,
	OperatorChars:    "*+-%<>!=&|/~",
	SpecialVar:       "@:?$",
	IdentifierQuotes: "`\"[",
})

// MSSQL uses @ variables and square-bracket identifier quoting.
var MSSQL = Define(DialectSpec{
	Keywords:         standardKeywords + mssqlKeywords,
	Types:            standardTypes + mssqlTypes,
	Builtin:          mssqlBuiltin,
	OperatorChars:    "*+-%<>!=^&|/",
	SpecialVar:       "@",
	IdentifierQuotes: `"[`,
})

// PLKQL is the procedural flavor: custom-delimited q'...' literals,
// charset casts and double-quoted strings.
var PLKQL = Define(DialectSpec{
	Keywords:              standardKeywords + plkqlKeywords,
	Types:                 standardTypes + plkqlTypes,
	OperatorChars:         "*/+-%<>!=~",
	DoubleQuotedStrings:   true,
	CharSetCasts:          true,
	PLKQLQuotingMechanism: true,
})

// Cassandra carries its own vocabulary and // comments.
var Cassandra = Define(DialectSpec{
	Keywords:      cassandraKeywords,
	Types:         cassandraTypes,
	SlashComments: true,
})

var dialectsByName = map[string]*Dialect{
	"standard":   StandardKQL,
	"mysql":      MySQL,
	"mariadb":    MariaDB,
	"postgresql": PostgreSQL,
	"postgres":   PostgreSQL,
	"sqlite":     SQLite,
	"mssql":      MSSQL,
	"plkql":      PLKQL,
	"cassandra":  Cassandra,
}

// DialectByName resolves a predefined dialect by name, ignoring case.
func DialectByName(name string) (*Dialect, bool) {
	d, ok := dialectsByName[strings.ToLower(name)]
	return d, ok
}

// DialectNames lists the predefined dialect names in sorted order.
func DialectNames() []string {
	names := make([]string, 0, len(dialectsByName))
	for name := range dialectsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
