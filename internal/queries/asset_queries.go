package queries

const (
	ListAssets = `
SELECT id, nome, valor_atual
  FROM ativos
 ORDER BY id`

	GetAsset = `
SELECT id, nome, valor_atual
  FROM ativos
 WHERE id = $1`

	GetAssetWithAllocations = `
SELECT a.id, a.nome, a.valor_atual,
       al.id, al.cliente_id, al.ativo_id, al.quantidade,
       c.id, c.nome, c.email, c.status
  FROM ativos a
  LEFT JOIN alocacoes al ON al.ativo_id = a.id
  LEFT JOIN clientes c ON c.id = al.cliente_id
 WHERE a.id = $1
 ORDER BY al.id`

	InsertAsset = `
INSERT INTO ativos (nome, valor_atual)
VALUES ($1, $2)
RETURNING id, nome, valor_atual`

	UpdateAsset = `
UPDATE ativos
   SET nome = $2, valor_atual = $3
 WHERE id = $1
RETURNING id, nome, valor_atual`

	DeleteAsset = `DELETE FROM ativos WHERE id = $1`
)
